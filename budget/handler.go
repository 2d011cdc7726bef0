package budget

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"themison-be/util"
)

type BudgetHandler struct {
	Service *BudgetService
	redis   *redis.Client
}

func NewBudgetHandler(service *BudgetService, redisClient *redis.Client) *BudgetHandler {
	return &BudgetHandler{Service: service, redis: redisClient}
}

func (h *BudgetHandler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID := c.GetInt64("user_id")
	entry, err := h.Service.CreateEntry(req, int(userID))
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.CreatedResponse(c, "Budget entry created successfully", entry)
}

func (h *BudgetHandler) GetEntriesByTrial(c *gin.Context) {
	trialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid trial id")
		return
	}
	entries, err := h.Service.GetEntriesByTrial(trialID)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Budget entries retrieved successfully", entries)
}

func (h *BudgetHandler) DeleteEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if err := h.Service.DeleteEntry(id); err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Budget entry deleted successfully", nil)
}

func (h *BudgetHandler) GetSummaryByTrial(c *gin.Context) {
	trialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid trial id")
		return
	}
	summary, err := h.Service.GetSummaryByTrial(trialID)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Budget summary retrieved successfully", summary)
}

func (h *BudgetHandler) GenerateEmbedURL(c *gin.Context) {
	var req GenerateEmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := h.Service.GenerateEmbedURL(&req)
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	baseURL := fmt.Sprintf("https://%s", c.Request.Host)
	viewURL := fmt.Sprintf("%s/api/budget/view-embed?token=%s", baseURL, token)

	util.SuccessResponse(c, "Dashboard embed URL generated successfully", gin.H{
		"url": viewURL,
	})
}

func (h *BudgetHandler) ViewEmbed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		util.ErrorResponse(c, http.StatusBadRequest, "Token is required")
		return
	}

	key := "budget_embed_token:" + token
	ctxRedis := context.Background()

	dashURL, err := h.redis.Get(ctxRedis, key).Result()
	if err == redis.Nil {
		util.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, fmt.Sprintf("Failed to validate token: %v", err))
		return
	}

	// One-time use.
	h.redis.Del(ctxRedis, key)

	c.Redirect(http.StatusFound, dashURL)
}
