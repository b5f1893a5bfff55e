package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ericogr/chimera-battle/internal/constants"
)

// RegisterRoutes mounts every battle endpoint under the API prefix.
func RegisterRoutes(router *gin.Engine, h *BattleHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, Health)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCatalog, h.GetCatalog)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleStart, h.StartBattle)
		apiRoutes.POST(constants.RouteBattleBack, h.BackToSetup)
		apiRoutes.POST(constants.RouteBattleTeam, h.ConfirmTeam)
		apiRoutes.POST(constants.RouteBattleIntents, h.SubmitIntent)
		apiRoutes.GET(constants.RouteBattleEvents, h.StreamEvents)
	}
}
