// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpile/internal/core/apperror"
	appctx "stockpile/internal/core/context"
	"stockpile/internal/domain/auth"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(ctx, req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// VerifyEmail handles POST /auth/verify
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.VerifyEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.VerifyEmail(ctx, auth.VerifyRequest{Login: req.Login, Code: req.Code}); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "email verified")
}

// ResendCode handles POST /auth/resend-code
func (h *AuthHandler) ResendCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ResendCodeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResendCode(ctx, req.Login); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "verification code sent")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: dto.FromTokenPair(token),
		User:  dto.FromUser(user),
	})
}

// RequestPasswordReset handles POST /auth/password-reset/request
// Always answers 200 so login IDs cannot be probed.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ResendCodeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.RequestPasswordReset(ctx, req.Login); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "if the account exists, a reset code has been sent")
}

// ResetPassword handles POST /auth/password-reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reset := auth.ResetPasswordRequest{
		Login:       req.Login,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	}
	if err := h.service.ResetPassword(ctx, reset); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password updated")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	user, err := h.service.GetByID(ctx, userCtx.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}
