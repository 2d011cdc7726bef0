package trial

import (
	"themison-be/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	repo := NewTrialRepository(db)
	service := NewTrialService(repo)
	handler := NewTrialHandler(service)

	trialRoutes := r.Group("/api/trials")
	trialRoutes.Use(middleware.AuthMiddleware())
	{
		trialRoutes.POST("", handler.CreateTrial)
		trialRoutes.GET("", handler.GetTrials)
		trialRoutes.GET("/:id", handler.GetTrialByID)
		trialRoutes.PUT("/:id", handler.UpdateTrial)
		trialRoutes.DELETE("/:id", handler.DeleteTrial)

		trialRoutes.POST("/:id/assignments", handler.AssignMember)
		trialRoutes.GET("/:id/assignments", handler.GetAssignments)
		trialRoutes.DELETE("/:id/assignments/:assignmentId", handler.RemoveAssignment)
	}
}
