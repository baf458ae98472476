package api

import (
	"net/http"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/gin-gonic/gin"
)

type ValidateDeckPayload struct {
	Mode game.BattleMode `json:"mode"`
}

// ValidateDeck reports whether the caller's deck may enter the given mode.
func (h *BattleHandler) ValidateDeck(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	deckID := idParam(c, "deckID", constants.ErrInvalidDeckID)
	if deckID == 0 {
		return
	}
	var req ValidateDeckPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	vr, err := h.svc.ValidateDeck(userID, deckID, req.Mode)
	if err != nil {
		writeServiceError(c, err, constants.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, vr)
}

type CreateAIBattlePayload struct {
	DeckID uint            `json:"deck_id"`
	Mode   game.BattleMode `json:"mode"`
}

// CreateAIBattle starts a battle against the house opponent.
func (h *BattleHandler) CreateAIBattle(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req CreateAIBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.DeckID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	sum, err := h.svc.CreateAIBattle(userID, req.DeckID, req.Mode)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, sum)
}

type ChallengePayload struct {
	OpponentID uint            `json:"opponent_id"`
	DeckID     uint            `json:"deck_id"`
	Mode       game.BattleMode `json:"mode"`
}

// CreateFriendBattle creates a pending battle and invites a friend.
func (h *BattleHandler) CreateFriendBattle(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req ChallengePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.OpponentID == 0 || req.DeckID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	sum, err := h.svc.CreateFriendBattle(userID, req.OpponentID, req.DeckID, req.Mode)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, sum)
}

type AcceptPayload struct {
	DeckID uint `json:"deck_id"`
}

// AcceptInvitation answers a pending challenge with the responder's deck.
func (h *BattleHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}
	var req AcceptPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.DeckID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := h.svc.AcceptInvitation(battleID, userID, req.DeckID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	if !res.Success {
		c.JSON(http.StatusConflict, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeclineInvitation turns a pending challenge down.
func (h *BattleHandler) DeclineInvitation(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}

	res, err := h.svc.DeclineInvitation(battleID, userID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateBattle)
		return
	}
	if !res.Success {
		c.JSON(http.StatusConflict, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListInvitations returns pending challenges addressed to the caller.
func (h *BattleHandler) ListInvitations(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	invitations, err := h.svc.GetPendingInvitations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// GetBattle returns the participant-only battle snapshot.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}

	view, err := h.svc.GetBattleStatus(battleID, userID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchBattles)
		return
	}
	c.JSON(http.StatusOK, view)
}

type SelectCardPayload struct {
	CardID uint `json:"card_id"`
}

// SelectCard stores the caller's card for the current phase.
func (h *BattleHandler) SelectCard(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}
	var req SelectCardPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	sum, err := h.svc.SelectCardForPhase(battleID, userID, req.CardID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStoreSelection)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// ExecuteAttack resolves one attack of the current phase.
func (h *BattleHandler) ExecuteAttack(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}

	res, err := h.svc.ExecuteAttack(battleID, userID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedExecuteAttack)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ForfeitBattle concedes an in-progress battle to the opponent.
func (h *BattleHandler) ForfeitBattle(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}

	sum, err := h.svc.ForfeitBattle(battleID, userID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedForfeit)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GetBattleHistory returns the resolved phase records of a battle.
func (h *BattleHandler) GetBattleHistory(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}

	records, err := h.svc.GetBattleHistory(battleID, userID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": records})
}

// BattleEvents upgrades the connection and streams battle events. The
// subscriber must be a participant; the check reuses the status read.
func (h *BattleHandler) BattleEvents(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID := idParam(c, "battleID", constants.ErrInvalidBattleID)
	if battleID == 0 {
		return
	}
	if _, err := h.svc.GetBattleStatus(battleID, userID); err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchBattles)
		return
	}
	// the upgrader writes its own error response on failure
	_ = h.hub.Subscribe(c.Writer, c.Request, battleID)
}
