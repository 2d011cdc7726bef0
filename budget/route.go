package budget

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"themison-be/middleware"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, redisClient *redis.Client) {
	repo := NewBudgetRepository(db)
	service := NewBudgetService(repo, redisClient)
	handler := NewBudgetHandler(service, redisClient)

	// Token already carries authorization, no auth middleware here.
	r.GET("/api/budget/view-embed", handler.ViewEmbed)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/budget/entries", handler.CreateEntry)
		api.DELETE("/budget/entries/:id", handler.DeleteEntry)
		api.POST("/budget/generate-embed-url", handler.GenerateEmbedURL)
		api.GET("/trials/:id/budget", handler.GetEntriesByTrial)
		api.GET("/trials/:id/budget/summary", handler.GetSummaryByTrial)
	}
}
