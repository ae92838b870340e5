// Package auth provides authentication domain logic.
//
// Users live in the control-plane database; every user is also a tenant
// and owns a dedicated inventory database.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"stockpile/internal/core/apperror"
)

// VerificationCodeTTL is how long an emailed code stays usable.
const VerificationCodeTTL = 10 * time.Minute

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents an account. One user = one tenant.
type User struct {
	ID                     int64      `db:"id" json:"id"`
	LoginID                string     `db:"login_id" json:"loginId"`
	Email                  string     `db:"email" json:"email"`
	PasswordHash           string     `db:"password_hash" json:"-"`
	EmailVerified          bool       `db:"email_verified" json:"emailVerified"`
	VerificationCode       string     `db:"verification_code" json:"-"`
	VerificationCodeExpiry *time.Time `db:"verification_code_expiry" json:"-"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewUser creates an unverified user. The ID is assigned by the database.
func NewUser(loginID, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		LoginID:      strings.TrimSpace(loginID),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.LoginID == "" {
		return apperror.NewValidation("login is required").WithDetail("field", "loginId")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !emailPattern.MatchString(u.Email) {
		return apperror.NewValidation("email is invalid").WithDetail("field", "email")
	}
	return nil
}

// SetVerificationCode stores a fresh code with its expiry.
func (u *User) SetVerificationCode(code string) {
	expiry := time.Now().Add(VerificationCodeTTL)
	u.VerificationCode = code
	u.VerificationCodeExpiry = &expiry
	u.UpdatedAt = time.Now()
}

// CheckVerificationCode reports whether code matches and has not expired.
func (u *User) CheckVerificationCode(code string) bool {
	if u.VerificationCode == "" || u.VerificationCode != code {
		return false
	}
	if u.VerificationCodeExpiry == nil {
		return false
	}
	return time.Now().Before(*u.VerificationCodeExpiry)
}

// MarkVerified clears the code and flags the email as verified.
func (u *User) MarkVerified() {
	u.EmailVerified = true
	u.VerificationCode = ""
	u.VerificationCodeExpiry = nil
	u.UpdatedAt = time.Now()
}

// GenerateCode returns a random six digit verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Credentials for login. Login accepts either the login ID or the email.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest for user registration.
type RegisterRequest struct {
	LoginID  string `json:"loginId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest confirms an emailed code.
type VerifyRequest struct {
	Login string `json:"login"`
	Code  string `json:"code"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Login       string `json:"login"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}
