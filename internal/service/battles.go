package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// BattleSummary reports a freshly created battle.
type BattleSummary struct {
	BattleID   uint              `json:"battle_id"`
	OpponentID uint              `json:"opponent_id"`
	Mode       game.BattleMode   `json:"mode"`
	Status     game.BattleStatus `json:"status"`
	IsAIBattle bool              `json:"is_ai_battle"`
}

// ResponseResult reports an accept/decline attempt. Failure here is a
// validation-style outcome, not an infrastructure error.
type ResponseResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Issues  []string `json:"issues,omitempty"`
}

// CreateAIBattle starts a battle against the reserved AI opponent. There is
// no invitation phase: the battle is in_progress immediately, session
// seeded at phase 1 with scores 0/0.
func (s *BattleService) CreateAIBattle(userID, deckID uint, mode game.BattleMode) (*BattleSummary, error) {
	vr, err := s.ValidateDeck(userID, deckID, mode)
	if err != nil {
		return nil, err
	}
	if !vr.Valid {
		return nil, &ValidationError{Result: *vr}
	}

	aiUser, err := s.repo.FindAIUser()
	if err != nil {
		// the AI identity is provisioned once at startup; a missing row is
		// an operational fault, not a per-request concern
		return nil, fmt.Errorf("ai opponent not provisioned: %w", err)
	}
	aiDeck, err := s.repo.GetDeckByOwner(aiUser.ID)
	if err != nil {
		return nil, fmt.Errorf("ai deck not provisioned: %w", err)
	}

	aiDeckID := aiDeck.ID
	battle := &game.Battle{
		Player1ID:     userID,
		Player2ID:     aiUser.ID,
		Player1DeckID: deckID,
		Player2DeckID: &aiDeckID,
		Mode:          mode,
		IsAIBattle:    true,
		Status:        game.StatusInProgress,
	}
	if err := s.repo.CreateBattle(battle); err != nil {
		return nil, err
	}
	if _, err := s.sessions.Create(battle, aiDeck.ID); err != nil {
		return nil, err
	}

	return &BattleSummary{
		BattleID:   battle.ID,
		OpponentID: aiUser.ID,
		Mode:       mode,
		Status:     battle.Status,
		IsAIBattle: true,
	}, nil
}

// CreateFriendBattle creates a pending battle and invites the opponent.
// Notification and email are best effort and never fail the creation.
func (s *BattleService) CreateFriendBattle(userID, opponentID, deckID uint, mode game.BattleMode) (*BattleSummary, error) {
	if opponentID == userID {
		return nil, &ValidationError{Result: ValidationResult{Message: "you cannot challenge yourself"}}
	}
	opponent, err := s.repo.GetUserByID(opponentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if opponent.IsAI {
		return nil, &ValidationError{Result: ValidationResult{Message: "the AI opponent cannot be challenged directly"}}
	}
	friends, err := s.repo.AreFriends(userID, opponentID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, &ValidationError{Result: ValidationResult{Message: "you can only challenge players on your friend list"}}
	}

	vr, err := s.ValidateDeck(userID, deckID, mode)
	if err != nil {
		return nil, err
	}
	if !vr.Valid {
		return nil, &ValidationError{Result: *vr}
	}

	challenger, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	battle := &game.Battle{
		Player1ID:     userID,
		Player2ID:     opponentID,
		Player1DeckID: deckID,
		Mode:          mode,
		Status:        game.StatusPending,
	}
	if err := s.repo.CreateBattle(battle); err != nil {
		return nil, err
	}

	s.notifyUser(opponentID, battle.ID,
		notify.KindInvitation,
		fmt.Sprintf("%s challenged you to a %s battle", challenger.Name, mode))
	s.broadcast(battle.ID, realtime.EventInvitationCreated, battle)

	return &BattleSummary{
		BattleID:   battle.ID,
		OpponentID: opponentID,
		Mode:       mode,
		Status:     battle.Status,
	}, nil
}

// invitationExpired checks the soft 24h deadline. Detection transitions the
// battle to expired as a side effect; the periodic sweep is only a
// fallback, every read re-checks elapsed time itself.
func (s *BattleService) invitationExpired(battle *game.Battle) (bool, error) {
	if time.Since(battle.CreatedAt) <= s.invitationTTL {
		return false, nil
	}
	battle.Status = game.StatusExpired
	if err := s.repo.UpdateBattle(battle); err != nil {
		return true, err
	}
	return true, nil
}

// AcceptInvitation lets the invited player answer a pending challenge with
// the deck they will fight with.
func (s *BattleService) AcceptInvitation(battleID, userID, deckID uint) (*ResponseResult, error) {
	battle, side, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	if side != game.SidePlayer2 {
		return nil, ErrNotInvitationRecipient
	}
	switch battle.Status {
	case game.StatusPending:
		// continue below
	case game.StatusExpired:
		return &ResponseResult{Success: false, Message: constants.ErrInvitationExpired}, nil
	default:
		return &ResponseResult{Success: false, Message: constants.ErrInvitationResponded}, nil
	}

	expired, err := s.invitationExpired(battle)
	if err != nil {
		return nil, err
	}
	if expired {
		return &ResponseResult{Success: false, Message: constants.ErrInvitationExpired}, nil
	}

	vr, err := s.ValidateDeck(userID, deckID, battle.Mode)
	if err != nil {
		return nil, err
	}
	if !vr.Valid {
		return &ResponseResult{Success: false, Message: vr.Message, Issues: vr.Issues}, nil
	}

	battle.Status = game.StatusInProgress
	battle.Player2DeckID = &deckID
	if err := s.repo.UpdateBattle(battle); err != nil {
		return nil, err
	}
	if _, err := s.sessions.Create(battle, deckID); err != nil {
		return nil, err
	}

	acceptor, aerr := s.repo.GetUserByID(userID)
	name := "Your opponent"
	if aerr == nil {
		name = acceptor.Name
	}
	s.notifyUser(battle.Player1ID, battle.ID,
		notify.KindInvitationAccepted,
		fmt.Sprintf("%s accepted your battle challenge", name))
	s.broadcast(battle.ID, realtime.EventInvitationResponded, battle)

	return &ResponseResult{Success: true, Message: "battle started"}, nil
}

// DeclineInvitation lets the invited player turn a pending challenge down.
func (s *BattleService) DeclineInvitation(battleID, userID uint) (*ResponseResult, error) {
	battle, side, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	if side != game.SidePlayer2 {
		return nil, ErrNotInvitationRecipient
	}
	if battle.Status != game.StatusPending {
		return &ResponseResult{Success: false, Message: constants.ErrInvitationResponded}, nil
	}

	battle.Status = game.StatusExpired
	if err := s.repo.UpdateBattle(battle); err != nil {
		return nil, err
	}

	decliner, derr := s.repo.GetUserByID(userID)
	name := "Your opponent"
	if derr == nil {
		name = decliner.Name
	}
	s.notifyUser(battle.Player1ID, battle.ID,
		notify.KindInvitationDeclined,
		fmt.Sprintf("%s declined your battle challenge", name))
	s.broadcast(battle.ID, realtime.EventInvitationResponded, battle)

	return &ResponseResult{Success: true, Message: "invitation declined"}, nil
}

// GetPendingInvitations lists pending challenges addressed to the user.
// Stale rows are filtered out here regardless of sweep timing.
func (s *BattleService) GetPendingInvitations(userID uint) ([]game.Battle, error) {
	battles, err := s.repo.GetPendingInvitations(userID)
	if err != nil {
		return nil, err
	}
	fresh := make([]game.Battle, 0, len(battles))
	for _, b := range battles {
		if time.Since(b.CreatedAt) <= s.invitationTTL {
			fresh = append(fresh, b)
		}
	}
	return fresh, nil
}

// BattleStatusView is the participant-only battle snapshot.
type BattleStatusView struct {
	BattleID     uint              `json:"battle_id"`
	Mode         game.BattleMode   `json:"mode"`
	Status       game.BattleStatus `json:"status"`
	IsAIBattle   bool              `json:"is_ai_battle"`
	WinnerID     *uint             `json:"winner_id,omitempty"`
	CurrentPhase int               `json:"current_phase"`
	Player1Score int               `json:"player1_score"`
	Player2Score int               `json:"player2_score"`
	YourSide     game.Side         `json:"your_side"`
	Phase        *game.PhaseState  `json:"phase,omitempty"`
}

// GetBattleStatus returns the battle and session snapshot for a
// participant; anyone else learns nothing beyond "not found". The read
// takes no lock and mutates nothing.
func (s *BattleService) GetBattleStatus(battleID, userID uint) (*BattleStatusView, error) {
	battle, side, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	view := &BattleStatusView{
		BattleID:   battle.ID,
		Mode:       battle.Mode,
		Status:     battle.Status,
		IsAIBattle: battle.IsAIBattle,
		WinnerID:   battle.WinnerID,
		YourSide:   side,
	}
	sess, err := s.sessions.Get(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// pending battles have no session yet
			return view, nil
		}
		return nil, err
	}
	view.CurrentPhase = sess.CurrentPhase
	view.Player1Score = sess.Player1Score
	view.Player2Score = sess.Player2Score
	view.Phase = sess.Phase
	return view, nil
}

// GetBattleHistory returns the resolved phase records, participants only.
func (s *BattleService) GetBattleHistory(battleID, userID uint) ([]game.PhaseRecord, error) {
	if _, _, err := s.loadParticipantBattle(battleID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetPhaseRecords(battleID)
}
