package auth

import (
	"github.com/DhavalSuthar-24/transferhub/config"
	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, clubs ClubLookup, appConfig *config.Config) {
	authController := NewAuthController(NewAuthRepository(db), clubs, appConfig)
	registerRoutes(router, authController, middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
}

func registerRoutes(router *gin.RouterGroup, ac *AuthController, authMW gin.HandlerFunc) {
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", ac.Register)
		authPublic.POST("/login", ac.Login)
		authPublic.POST("/refresh-token", ac.RefreshToken)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(authMW)
	{
		authProtected.GET("/me", ac.GetProfile)
		authProtected.POST("/logout", ac.Logout)
	}
}
