package user

import (
	"net/http"
	"strconv"

	"themison-be/util"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *UserService
}

func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{
		Service: service,
	}
}

func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.Register(&req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(ctx, "User registered successfully", created)
}

func (h *UserHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Login successful", resp)
}

func (h *UserHandler) Logout(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.Service.Logout(userID.(int64)); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to logout")
		return
	}

	util.SuccessResponse(ctx, "Logout successful", nil)
}

func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Refresh token is required")
		return
	}

	accessToken, err := h.Service.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Token refreshed", gin.H{"access_token": accessToken})
}

func (h *UserHandler) GetUsers(ctx *gin.Context) {
	users, err := h.Service.GetUsers()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Users retrieved successfully", users)
}

func (h *UserHandler) GetUserByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, err := h.Service.GetUserByID(id)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	util.SuccessResponse(ctx, "User retrieved successfully", u)
}

func (h *UserHandler) UpdateUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.UpdateUser(id, &req)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "User updated successfully", updated)
}

func (h *UserHandler) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.Service.DeleteUser(id); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "User deleted successfully", nil)
}
