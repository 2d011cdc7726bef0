package notification

import (
	"net/http"
	"strconv"

	"themison-be/organization"
	"themison-be/util"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *NotificationService
	hub     *Hub
	orgRepo *organization.OrganizationRepository
}

func NewNotificationHandler(service *NotificationService, hub *Hub, orgRepo *organization.OrganizationRepository) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		hub:     hub,
		orgRepo: orgRepo,
	}
}

func (h *NotificationHandler) resolveMember(ctx *gin.Context) (*organization.Member, bool) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	member, err := h.orgRepo.GetMemberByUserID(userID.(int64))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusForbidden, "No member identity for user")
		return nil, false
	}
	return member, true
}

func (h *NotificationHandler) GetNotifications(ctx *gin.Context) {
	member, ok := h.resolveMember(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	filter := NotificationFilter{
		MemberID:   member.ID,
		UnreadOnly: ctx.Query("unread") == "true",
		Limit:      limit,
		Offset:     offset,
	}

	notifications, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) GetUnreadCount(ctx *gin.Context) {
	member, ok := h.resolveMember(ctx)
	if !ok {
		return
	}

	count, err := h.service.CountUnread(member.ID)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Unread count retrieved successfully", gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(id); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(ctx *gin.Context) {
	member, ok := h.resolveMember(ctx)
	if !ok {
		return
	}

	if err := h.service.MarkAllRead(member.ID); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "All notifications marked as read", nil)
}

// PublishInternal lets trusted external systems (monitors, integration
// jobs) push a notification to a member. Protected by API key, not user
// auth.
func (h *NotificationHandler) PublishInternal(ctx *gin.Context) {
	var req struct {
		MemberID int    `json:"member_id" binding:"required"`
		Title    string `json:"title" binding:"required"`
		Body     string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Notify(req.MemberID, req.Title, req.Body); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Notification published successfully", nil)
}

func (h *NotificationHandler) Subscribe(ctx *gin.Context) {
	member, ok := h.resolveMember(ctx)
	if !ok {
		return
	}

	if err := h.hub.Subscribe(member.ID, ctx.Writer, ctx.Request); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to upgrade connection")
	}
}
