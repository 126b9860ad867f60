package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// AuthHandler serves the auth endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates a member.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 20001, err.Error())
		case errors.Is(err, service.ErrWorkspaceSuspended):
			response.Forbidden(c, 20002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, tokens)
}

// Refresh rotates a token pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Unauthorized(c, 20003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, tokens)
}

// Logout revokes the presented access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return
	}

	h.authSvc.Logout(c.Request.Context(), claims)
	response.OK(c, nil)
}

// Me returns the caller's account.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	me, err := h.authSvc.Me(c.Request.Context(), workspaceID, memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 20004, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, me)
}

// ChangePassword rotates the caller's password.
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), workspaceID, memberID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, 20005, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 20004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
