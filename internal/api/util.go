package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/engine"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// idParam parses a numeric path parameter; a zero return means the response
// was already written.
func idParam(c *gin.Context, name, clientErr string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: clientErr})
		return 0
	}
	return uint(id)
}

// writeServiceError maps service and engine errors onto HTTP responses. Deck
// validation failures keep their issue list; anything unrecognized becomes a
// 500 carrying the endpoint's fallback message after logging.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, ve.Result)
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrDeckNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrDeckNotFound})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUserNotFound})
	case errors.Is(err, service.ErrNotInvitationRecipient):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotInvitationTarget})
	case errors.Is(err, service.ErrBattleNotInProgress):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case errors.Is(err, service.ErrCardNotInDeck):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotInDeck})
	case errors.Is(err, engine.ErrCardAlreadySelected):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCardAlreadySelected})
	case errors.Is(err, engine.ErrCardsNotSelected):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCardsNotSelected})
	case errors.Is(err, engine.ErrPhaseConcluded):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPhaseConcluded})
	default:
		logging.Error("request failed", err, logging.Fields{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
