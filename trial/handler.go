package trial

import (
	"net/http"
	"strconv"

	"themison-be/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrialHandler struct {
	service *TrialService
}

func NewTrialHandler(service *TrialService) *TrialHandler {
	return &TrialHandler{service: service}
}

func (h *TrialHandler) CreateTrial(ctx *gin.Context) {
	var req CreateTrialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	trial, err := h.service.CreateTrial(&req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Trial created successfully", trial)
}

func (h *TrialHandler) GetTrials(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	filter := TrialFilter{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	if orgStr := ctx.Query("organization_id"); orgStr != "" {
		if orgID, err := strconv.Atoi(orgStr); err == nil {
			filter.OrganizationID = &orgID
		}
	}

	trials, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Trials retrieved successfully", gin.H{
		"trials": trials,
		"total":  total,
	})
}

func (h *TrialHandler) GetTrialByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	trial, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "Trial not found")
		return
	}

	util.SuccessResponse(ctx, "Trial retrieved successfully", trial)
}

func (h *TrialHandler) UpdateTrial(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	var req UpdateTrialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	trial, err := h.service.Update(id, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Trial updated successfully", trial)
}

func (h *TrialHandler) DeleteTrial(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Trial deleted successfully", nil)
}

func (h *TrialHandler) AssignMember(ctx *gin.Context) {
	trialID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	var req AssignMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Member ID and role are required")
		return
	}

	assignment, err := h.service.AssignMember(trialID, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Member assigned successfully", assignment)
}

func (h *TrialHandler) GetAssignments(ctx *gin.Context) {
	trialID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid trial ID")
		return
	}

	assignments, err := h.service.GetAssignments(trialID)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Assignments retrieved successfully", assignments)
}

func (h *TrialHandler) RemoveAssignment(ctx *gin.Context) {
	assignmentID, err := strconv.Atoi(ctx.Param("assignmentId"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	if err := h.service.RemoveAssignment(assignmentID); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Assignment removed successfully", nil)
}
