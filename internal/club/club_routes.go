package club

import (
	"github.com/DhavalSuthar-24/transferhub/config"
	mw "github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClubRoutes sets up the club browsing and claiming routes.
func ClubRoutes(router *gin.RouterGroup, db *gorm.DB, gateway MarketGateway, appConfig *config.Config) {
	controller := NewClubController(NewClubRepository(db), gateway)
	registerRoutes(router, controller, mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
}

func registerRoutes(router *gin.RouterGroup, cc *ClubController, auth gin.HandlerFunc) {
	router.GET("/leagues", cc.GetLeagues)
	router.GET("/clubs", cc.GetAllClubs)
	router.GET("/clubs/:club_id", cc.GetClubByID)
	router.GET("/clubs/:club_id/players", cc.GetClubPlayers)

	authRoutes := router.Group("/")
	authRoutes.Use(auth, rmiddleware.RoleMiddleware(rmiddleware.RoleManager))
	{
		authRoutes.POST("/clubs/:club_id/claim", cc.ClaimClub)
	}
}
