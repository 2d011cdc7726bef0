package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"themison-be/middleware"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) *PatientRepository {
	repo := NewPatientRepository(db)
	service := NewPatientService(repo)
	handler := NewPatientHandler(service)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/trials/:id/patients", handler.GetPatientsByTrial)
		api.POST("/patients", handler.CreatePatient)
		api.GET("/patients/:id", handler.GetPatientByID)
		api.PATCH("/patients/:id/status", handler.UpdatePatientStatus)
		api.POST("/patients/:id/visits", handler.CreateVisit)
		api.GET("/patients/:id/visits", handler.GetVisitsByPatient)
		api.PATCH("/visits/:id", handler.UpdateVisit)
	}
	return repo
}
