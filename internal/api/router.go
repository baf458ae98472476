package api

import (
	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches the battle API under /api. Only the leaderboard
// and version endpoints are public; everything else requires a session.
func RegisterRoutes(router *gin.Engine, handler *BattleHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET("/version", Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.POST(constants.RouteValidateDeck, handler.ValidateDeck)
		protected.POST(constants.RouteAIBattle, handler.CreateAIBattle)
		protected.POST(constants.RouteFriendBattle, handler.CreateFriendBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.POST(constants.RouteBattleAccept, handler.AcceptInvitation)
		protected.POST(constants.RouteBattleDecline, handler.DeclineInvitation)
		protected.POST(constants.RouteBattleSelect, handler.SelectCard)
		protected.POST(constants.RouteBattleAttack, handler.ExecuteAttack)
		protected.POST(constants.RouteBattleForfeit, handler.ForfeitBattle)
		protected.GET(constants.RouteBattleHistory, handler.GetBattleHistory)
		protected.GET(constants.RouteBattleEvents, handler.BattleEvents)
		protected.GET(constants.RouteInvitations, handler.ListInvitations)
		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.GET(constants.RouteNotifications, handler.ListNotifications)
		protected.POST(constants.RouteNotificationRd, handler.MarkNotificationRead)
	}
}
