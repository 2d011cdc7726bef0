package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"themison-be/organization"
	"themison-be/util"
)

type ChatHandler struct {
	Service *ChatService
	orgRepo *organization.OrganizationRepository
}

func NewChatHandler(service *ChatService, orgRepo *organization.OrganizationRepository) *ChatHandler {
	return &ChatHandler{Service: service, orgRepo: orgRepo}
}

func (h *ChatHandler) resolveMember(c *gin.Context) (*organization.Member, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		util.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	member, err := h.orgRepo.GetMemberByUserID(userID.(int64))
	if err != nil || member == nil {
		util.ErrorResponse(c, http.StatusForbidden, "No member profile for this user")
		return nil, false
	}
	return member, true
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	member, ok := h.resolveMember(c)
	if !ok {
		return
	}
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	session, err := h.Service.CreateSession(member.ID, req)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.CreatedResponse(c, "Chat session created successfully", session)
}

func (h *ChatHandler) GetSessions(c *gin.Context) {
	member, ok := h.resolveMember(c)
	if !ok {
		return
	}
	sessions, err := h.Service.GetSessionsByMember(member.ID)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Chat sessions retrieved successfully", sessions)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	member, ok := h.resolveMember(c)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid session id")
		return
	}
	messages, err := h.Service.GetMessages(member.ID, sessionID)
	if err != nil {
		util.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	util.SuccessResponse(c, "Chat messages retrieved successfully", messages)
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	member, ok := h.resolveMember(c)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid session id")
		return
	}
	if err := h.Service.DeleteSession(member.ID, sessionID); err != nil {
		util.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	util.SuccessResponse(c, "Chat session deleted successfully", nil)
}

// SendMessage streams the assistant reply back as server-sent events.
// Each delta is one "message" event, a final "done" event carries the
// persisted message id.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	member, ok := h.resolveMember(c)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid session id")
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	flusher, _ := c.Writer.(http.Flusher)

	onDelta := func(delta string) {
		fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", sseData(delta))
		if flusher != nil {
			flusher.Flush()
		}
	}

	msg, err := h.Service.SendMessage(c.Request.Context(), member.ID, sessionID, req.Content, onDelta)
	if err != nil {
		fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", sseData(err.Error()))
		if flusher != nil {
			flusher.Flush()
		}
		return
	}

	fmt.Fprintf(c.Writer, "event: done\ndata: {\"message_id\": %d}\n\n", msg.ID)
	if flusher != nil {
		flusher.Flush()
	}
}

// sseData wraps a text fragment as a JSON string so newlines survive
// the event-stream framing.
func sseData(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
