package document

import (
	"os"
	"strconv"
	"time"

	"themison-be/middleware"
	"themison-be/notification"
	"themison-be/organization"
	"themison-be/storage"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type memberResolver struct {
	repo *organization.OrganizationRepository
}

func (m *memberResolver) GetMemberByUserID(userID int64) (*organization.Member, error) {
	return m.repo.GetMemberByUserID(userID)
}

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, redisClient *redis.Client, store *storage.MinioStore, notifier *notification.NotificationService) {
	repo := NewDocumentRepository(db)
	orgRepo := organization.NewOrganizationRepository(db)

	cacheTTL := 30 * time.Second
	if ttlStr := os.Getenv("DOCUMENT_CACHE_TTL_SECONDS"); ttlStr != "" {
		if seconds, err := strconv.Atoi(ttlStr); err == nil && seconds > 0 {
			cacheTTL = time.Duration(seconds) * time.Second
		}
	}
	cache := NewListCache(redisClient, cacheTTL)

	service := NewDocumentService(repo, store, &memberResolver{repo: orgRepo}, cache, notifier)

	validator := NewValidator()
	if sizeStr := os.Getenv("UPLOAD_MAX_FILE_SIZE_MB"); sizeStr != "" {
		if mb, err := strconv.Atoi(sizeStr); err == nil && mb > 0 {
			validator.MaxFileSize = int64(mb) * 1024 * 1024
		}
	}
	if countStr := os.Getenv("UPLOAD_MAX_FILES"); countStr != "" {
		if count, err := strconv.Atoi(countStr); err == nil && count > 0 {
			validator.MaxFiles = count
		}
	}

	handler := NewDocumentHandler(service, validator)

	trialDocs := r.Group("/api/trials/:id/documents")
	trialDocs.Use(middleware.AuthMiddleware())
	{
		trialDocs.POST("", handler.UploadDocuments)
	}

	docRoutes := r.Group("/api/documents")
	docRoutes.Use(middleware.AuthMiddleware())
	{
		docRoutes.GET("", handler.GetDocuments)
		docRoutes.GET("/:id", handler.GetDocumentByID)
		docRoutes.PATCH("/:id", handler.UpdateDocument)
		docRoutes.DELETE("/:id", handler.DeleteDocument)
	}
}
