package sso

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"themison-be/util"
)

type SSOHandler struct {
	service *SSOService
}

func NewSSOHandler(service *SSOService) *SSOHandler {
	return &SSOHandler{service: service}
}

func (h *SSOHandler) Login(c *gin.Context) {
	url, err := h.service.BeginLogin(c.Request.Context())
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *SSOHandler) Callback(c *gin.Context) {
	if !h.service.ConsumeState(c.Request.Context(), c.Query("state")) {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid oauth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		util.ErrorResponse(c, http.StatusBadRequest, "Code not found")
		return
	}

	response, err := h.service.HandleCallback(c.Request.Context(), code)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		util.SuccessResponse(c, "Login successful", response)
		return
	}

	c.SetCookie("access_token", response.AccessToken, 3600, "/", "", false, true)
	c.SetCookie("refresh_token", response.RefreshToken, 604800, "/", "", false, true)
	c.Redirect(http.StatusFound, frontendURL+"/")
}
