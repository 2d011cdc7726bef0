package organization

import (
	"themison-be/middleware"
	"themison-be/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	repo := NewOrganizationRepository(db)
	userRepo := user.NewUserRepository(db)
	service := NewOrganizationService(repo, userRepo)
	handler := NewOrganizationHandler(service)

	orgRoutes := r.Group("/api/organizations")
	orgRoutes.Use(middleware.AuthMiddleware())
	{
		orgRoutes.POST("", handler.CreateOrganization)
		orgRoutes.GET("", handler.GetAll)
		orgRoutes.GET("/:id", handler.GetByID)
		orgRoutes.PUT("/:id", handler.Update)
		orgRoutes.DELETE("/:id", handler.Delete)

		orgRoutes.POST("/:id/members", handler.InviteMember)
		orgRoutes.GET("/:id/members", handler.GetMembers)
		orgRoutes.PUT("/:id/members/:memberId", handler.UpdateMember)
		orgRoutes.DELETE("/:id/members/:memberId", handler.RemoveMember)
	}
}
