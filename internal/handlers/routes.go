package handlers

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the handlers mounted by the local development server.
type RouterConfig struct {
	Activities   *ActivityHandler
	Purchasables *PurchasableHandler
	Rewards      *RewardHandler
	Rockies      *RockieHandler
	Auth         *AuthHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "rockie-classroom-api",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (no auth required; login mints the token)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", config.Auth.Login)
		}

		activities := v1.Group("/activities")
		{
			activities.POST("", config.Activities.CreateActivity)
			activities.GET("", config.Activities.ListActivities)
			activities.GET("/:id", config.Activities.GetActivity)
			activities.PUT("/:id", config.Activities.UpdateActivity)
			activities.DELETE("/:id", config.Activities.DeleteActivity)
		}

		purchasables := v1.Group("/purchasables")
		{
			purchasables.POST("", config.Purchasables.CreatePurchasable)
			purchasables.GET("", config.Purchasables.ListPurchasables)
			purchasables.GET("/:id", config.Purchasables.GetPurchasable)
			purchasables.PUT("/:id", config.Purchasables.UpdatePurchasable)
			purchasables.DELETE("/:id", config.Purchasables.DeletePurchasable)
			purchasables.POST("/buy", config.Purchasables.BuyItem)
		}

		rewards := v1.Group("/rewards")
		{
			rewards.POST("", config.Rewards.CreateReward)
			rewards.GET("", config.Rewards.ListRewards)
			rewards.GET("/:id", config.Rewards.GetReward)
			rewards.PUT("/:id", config.Rewards.UpdateReward)
			rewards.DELETE("/:id", config.Rewards.DeleteReward)
		}

		rockies := v1.Group("/rockie")
		{
			rockies.POST("", config.Rockies.CreateRockie)
			rockies.GET("", config.Rockies.GetRockie)
			rockies.PUT("", config.Rockies.UpdateRockie)
			rockies.DELETE("", config.Rockies.DeleteRockie)
		}
	}
}
