package organization

import (
	"net/http"
	"strconv"

	"themison-be/util"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	service *OrganizationService
}

func NewOrganizationHandler(service *OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

func (h *OrganizationHandler) CreateOrganization(ctx *gin.Context) {
	var req CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Organization name is required")
		return
	}

	org := &Organization{Name: req.Name}
	if err := h.service.CreateOrganization(org); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Organization created successfully", org)
}

func (h *OrganizationHandler) GetAll(ctx *gin.Context) {
	orgs, err := h.service.GetAll()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Organizations retrieved successfully", orgs)
}

func (h *OrganizationHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	org, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "Organization not found")
		return
	}

	util.SuccessResponse(ctx, "Organization retrieved successfully", org)
}

func (h *OrganizationHandler) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Organization name is required")
		return
	}

	org := &Organization{ID: id, Name: req.Name}
	if err := h.service.Update(org); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Organization updated successfully", org)
}

func (h *OrganizationHandler) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Organization deleted successfully", nil)
}

func (h *OrganizationHandler) InviteMember(ctx *gin.Context) {
	orgID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req InviteMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Valid email is required")
		return
	}

	member, err := h.service.InviteMember(orgID, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Member invited successfully", member)
}

func (h *OrganizationHandler) GetMembers(ctx *gin.Context) {
	orgID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	members, err := h.service.GetMembers(orgID)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Members retrieved successfully", members)
}

func (h *OrganizationHandler) UpdateMember(ctx *gin.Context) {
	memberID, err := strconv.Atoi(ctx.Param("memberId"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid member ID")
		return
	}

	var req UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.service.UpdateMember(memberID, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Member updated successfully", member)
}

func (h *OrganizationHandler) RemoveMember(ctx *gin.Context) {
	memberID, err := strconv.Atoi(ctx.Param("memberId"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid member ID")
		return
	}

	if err := h.service.RemoveMember(memberID); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Member removed successfully", nil)
}
