package chat

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"themison-be/config"
	"themison-be/external"
	"themison-be/middleware"
	"themison-be/organization"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	repo := NewChatRepository(db)
	llm := external.NewLLMClient(config.LoadLLMConfig())
	service := NewChatService(repo, llm)
	orgRepo := organization.NewOrganizationRepository(db)
	handler := NewChatHandler(service, orgRepo)

	api := r.Group("/api/chat")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions", handler.GetSessions)
		api.GET("/sessions/:id/messages", handler.GetMessages)
		api.POST("/sessions/:id/messages", handler.SendMessage)
		api.DELETE("/sessions/:id", handler.DeleteSession)
	}
}
