package api

import (
	"net/http"
	"strconv"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListLeaderboard returns the top players. Ordering defaults to wins;
// ?order_by=win_rate switches to the percentage ranking.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	orderBy := c.Query("order_by")
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := h.svc.GetLeaderboard(orderBy, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

// GetPlayerStats returns the caller's aggregate battle record.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	stats, err := h.svc.GetUserBattleStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListNotifications returns the caller's in-app inbox, newest last.
func (h *BattleHandler) ListNotifications(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	notes, err := h.repo.GetNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInbox})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *BattleHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	noteID := idParam(c, "notificationID", constants.ErrInvalidRequest)
	if noteID == 0 {
		return
	}
	if err := h.repo.MarkNotificationRead(noteID, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFailedMarkRead})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "notification marked read"})
}
