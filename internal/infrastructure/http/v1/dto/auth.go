// Package dto provides data transfer objects for HTTP API.
package dto

import (
	"time"

	"stockpile/internal/domain/auth"
)

// --- Request DTOs ---

// RegisterRequest for user registration.
type RegisterRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ToAuthRequest converts to domain request.
func (r *RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		LoginID:  r.LoginID,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest for user login. Login accepts either login ID or email.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Login:    r.Login,
		Password: r.Password,
	}
}

// VerifyEmailRequest carries the emailed verification code.
type VerifyEmailRequest struct {
	Login string `json:"login" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// ResendCodeRequest asks for a fresh verification code.
type ResendCodeRequest struct {
	Login string `json:"login" binding:"required"`
}

// ResetPasswordRequest completes a password reset with an emailed code.
type ResetPasswordRequest struct {
	Login       string `json:"login" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Response DTOs ---

// TokenResponse represents the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromTokenPair creates response from domain token pair.
func FromTokenPair(tp *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken: tp.AccessToken,
		ExpiresAt:   tp.ExpiresAt,
		TokenType:   tp.TokenType,
	}
}

// UserResponse represents user in API response.
type UserResponse struct {
	ID            int64     `json:"id"`
	LoginID       string    `json:"loginId"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		LoginID:       u.LoginID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// LoginResponse bundles the token with the authenticated user.
type LoginResponse struct {
	Token *TokenResponse `json:"token"`
	User  *UserResponse  `json:"user"`
}
