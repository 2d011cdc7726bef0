package role

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"themison-be/middleware"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	repo := NewRoleRepository(db)
	service := NewRoleService(repo)
	handler := NewRoleHandler(service)

	roleGroup := r.Group("/api/roles")

	roleGroup.Use(middleware.AuthMiddleware())
	{
		roleGroup.POST("", handler.Create)
		roleGroup.GET("", handler.GetAll)
		roleGroup.GET("/:id", handler.GetByID)
		roleGroup.PUT("/:id", handler.Update)
		roleGroup.DELETE("/:id", handler.Delete)
	}
}
