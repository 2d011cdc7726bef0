package notification

import (
	"themison-be/middleware"
	"themison-be/organization"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// RegisterRoutes wires the notification endpoints and returns the service
// and hub so other features (document uploads, visit reminders) can emit
// notifications through them.
func RegisterRoutes(r *gin.Engine, db *sqlx.DB) (*NotificationService, *Hub) {
	repo := NewNotificationRepository(db)
	hub := NewHub()
	service := NewNotificationService(repo, hub)
	orgRepo := organization.NewOrganizationRepository(db)
	handler := NewNotificationHandler(service, hub, orgRepo)

	notificationRoutes := r.Group("/api/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware())
	{
		notificationRoutes.GET("", handler.GetNotifications)
		notificationRoutes.GET("/unread-count", handler.GetUnreadCount)
		notificationRoutes.PUT("/:id/read", handler.MarkRead)
		notificationRoutes.PUT("/read-all", handler.MarkAllRead)
		notificationRoutes.GET("/ws", handler.Subscribe)
	}

	internal := r.Group("/internal/notifications")
	internal.Use(middleware.APIKeyMiddleware())
	{
		internal.POST("", handler.PublishInternal)
	}

	return service, hub
}
