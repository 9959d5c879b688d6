package transfer

import (
	"github.com/DhavalSuthar-24/transferhub/config"
	mw "github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransferRoutes sets up the market routes for managers and the commissioner.
func TransferRoutes(router *gin.RouterGroup, db *gorm.DB, service *MarketService, appConfig *config.Config) {
	controller := NewTransferController(service, NewMarketRepository(db))
	registerRoutes(router, controller, mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
}

func registerRoutes(router *gin.RouterGroup, tc *TransferController, auth gin.HandlerFunc) {
	router.GET("/market/status", tc.GetMarketStatus)
	router.GET("/transfers/history", tc.GetHistory)

	managerRoutes := router.Group("/")
	managerRoutes.Use(auth, rmiddleware.RoleMiddleware(rmiddleware.RoleManager))
	{
		managerRoutes.GET("/me/club/inbox", tc.GetInbox)
		managerRoutes.GET("/me/club/messages", tc.GetMessages)
		managerRoutes.DELETE("/me/club/messages", tc.ClearMessages)

		managerRoutes.POST("/transfers/bids", tc.PlaceBid)
		managerRoutes.POST("/transfers/:transfer_id/respond", tc.RespondToTransfer)
		managerRoutes.DELETE("/transfers/:transfer_id", tc.DismissTransfer)

		managerRoutes.POST("/players/:player_id/release-clause", tc.ActivateReleaseClause)
		managerRoutes.POST("/players/:player_id/contract", tc.NegotiateContract)
		managerRoutes.POST("/players/:player_id/contract/conclude", tc.ConcludeContract)
		managerRoutes.PUT("/players/:player_id/transfer-status", tc.SetTransferStatus)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth, rmiddleware.CommissionerMiddleware())
	{
		adminRoutes.POST("/market/cycles", tc.AdvanceCycles)
		adminRoutes.PUT("/season", tc.StartSeason)
		adminRoutes.GET("/cooldowns", tc.GetCooldowns)
	}
}
