package document

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"themison-be/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	service   *DocumentService
	validator *Validator
}

func NewDocumentHandler(service *DocumentService, validator *Validator) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		validator: validator,
	}
}

func candidateFor(fh *multipart.FileHeader) FileCandidate {
	return FileCandidate{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}
}

// UploadDocuments accepts a multipart batch under the "files" field and
// uploads the accepted files sequentially.
func (h *DocumentHandler) UploadDocuments(ctx *gin.Context) {
	trialID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Multipart form is required")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		util.ErrorResponse(ctx, http.StatusBadRequest, "At least one file is required")
		return
	}

	documentType := ctx.PostForm("document_type")
	if documentType == "" {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Document type is required")
		return
	}

	userID, exists := ctx.Get("user_id")
	if !exists {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var description *string
	if desc := ctx.PostForm("description"); desc != "" {
		description = &desc
	}

	var tags []string
	if rawTags := ctx.PostForm("tags"); rawTags != "" {
		for _, tag := range strings.Split(rawTags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	var amendmentNumber *int
	if rawNum := ctx.PostForm("amendment_number"); rawNum != "" {
		if num, err := strconv.Atoi(rawNum); err == nil {
			amendmentNumber = &num
		}
	}

	candidates := make([]FileCandidate, 0, len(files))
	for _, fh := range files {
		candidates = append(candidates, candidateFor(fh))
	}

	var rejections []UploadError
	accepted := h.validator.ValidateBatch(0, candidates, func(name, reason string) {
		rejections = append(rejections, UploadError{FileName: name, Message: reason})
	})

	// Accepted candidates come back as an in-order subsequence, so a cursor
	// over the original headers recovers each file even when names repeat.
	requests := make([]UploadRequest, 0, len(accepted))
	next := 0
	for _, c := range accepted {
		for next < len(files) && candidateFor(files[next]) != c {
			next++
		}
		if next >= len(files) {
			break
		}
		fh := files[next]
		next++
		requests = append(requests, UploadRequest{
			File: c,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
			TrialID:         trialID,
			DocumentType:    documentType,
			Description:     description,
			Tags:            tags,
			AmendmentNumber: amendmentNumber,
		})
	}

	var progress []UploadProgressEntry
	created, failures := h.service.UploadBatch(ctx.Request.Context(), userID.(int64), requests, func(i int, entry UploadProgressEntry) {
		for len(progress) <= i {
			progress = append(progress, UploadProgressEntry{})
		}
		progress[i] = entry
	})

	status := "Documents uploaded"
	if len(created) == 0 && len(failures)+len(rejections) > 0 {
		status = "All document uploads failed"
	}

	util.CreatedResponse(ctx, status, gin.H{
		"documents": created,
		"failed":    failures,
		"rejected":  rejections,
		"progress":  progress,
	})
}

func (h *DocumentHandler) GetDocuments(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	filter := DocumentFilter{
		DocumentType: ctx.Query("document_type"),
		Status:       ctx.Query("status"),
		WithUploader: ctx.DefaultQuery("with_uploader", "true") == "true",
		Limit:        limit,
		Offset:       offset,
	}

	if trialStr := ctx.Query("trial_id"); trialStr != "" {
		trialID, err := uuid.Parse(trialStr)
		if err != nil {
			util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
			return
		}
		filter.TrialID = &trialID
	}

	if latestStr := ctx.Query("is_latest"); latestStr != "" {
		isLatest := latestStr == "true"
		filter.IsLatest = &isLatest
	}

	documents, total, err := h.service.List(ctx.Request.Context(), filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Documents retrieved successfully", gin.H{
		"documents": documents,
		"total":     total,
	})
}

func (h *DocumentHandler) GetDocumentByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
		return
	}

	util.SuccessResponse(ctx, "Document retrieved successfully", doc)
}

func (h *DocumentHandler) UpdateDocument(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid document ID")
		return
	}

	var req UpdateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
		return
	}

	util.SuccessResponse(ctx, "Document updated successfully", doc)
}

func (h *DocumentHandler) DeleteDocument(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid document ID")
		return
	}

	if err := h.service.Delete(ctx.Request.Context(), id); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Document deleted successfully", nil)
}
