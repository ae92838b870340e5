package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockpile/internal/core/apperror"
	"stockpile/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Provisioner creates the per-user inventory database.
type Provisioner interface {
	EnsureTenant(ctx context.Context, userID int64) error
}

// CodeSender delivers verification codes to the user.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

// Service provides registration, verification and login.
type Service struct {
	userRepo    UserRepository
	jwtService  *JWTService
	provisioner Provisioner
	sender      CodeSender
	config      ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	jwtService *JWTService,
	provisioner Provisioner,
	sender CodeSender,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtService:  jwtService,
		provisioner: provisioner,
		sender:      sender,
		config:      config,
	}
}

// Register creates an unverified account, provisions its inventory database
// and sends the verification code.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.LoginID, req.Email, string(passwordHash))
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByLogin(ctx, user.LoginID)
	if err != nil {
		return nil, fmt.Errorf("check login exists: %w", err)
	}
	if taken {
		return nil, apperror.NewDuplicate("user", "login_id", user.LoginID)
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if taken {
		return nil, apperror.NewDuplicate("user", "email", user.Email)
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}
	user.SetVerificationCode(code)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.provisioner.EnsureTenant(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("provision tenant database: %w", err)
	}

	if err := s.sender.SendCode(ctx, user.Email, code); err != nil {
		// The account exists; the user can ask for a new code.
		logger.Warn(ctx, "send verification code failed",
			"user_id", user.ID,
			"error", err)
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"login", user.LoginID)

	return user, nil
}

// VerifyEmail confirms the emailed code and activates the account.
func (s *Service) VerifyEmail(ctx context.Context, req VerifyRequest) error {
	user, err := s.userRepo.GetByLogin(ctx, req.Login)
	if err != nil {
		return err
	}

	if user.EmailVerified {
		return nil
	}
	if !user.CheckVerificationCode(req.Code) {
		return apperror.NewValidation("verification code is invalid or expired").
			WithDetail("field", "code")
	}

	user.MarkVerified()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	logger.Info(ctx, "email verified", "user_id", user.ID)
	return nil
}

// ResendCode issues a fresh verification code for an unverified account.
func (s *Service) ResendCode(ctx context.Context, login string) error {
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return apperror.NewConflict("email already verified")
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	user.SetVerificationCode(code)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return s.sender.SendCode(ctx, user.Email, code)
}

// Login authenticates by login ID or email and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.userRepo.GetByLogin(ctx, creds.Login)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if !user.EmailVerified {
		return nil, nil, apperror.NewForbidden("email is not verified")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)

	return &TokenPair{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// RequestPasswordReset sends a reset code to the account's email.
// An unknown login is reported the same as a known one.
func (s *Service) RequestPasswordReset(ctx context.Context, login string) error {
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	user.SetVerificationCode(code)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return s.sender.SendCode(ctx, user.Email, code)
}

// ResetPassword sets a new password after checking the reset code.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "newPassword")
	}

	user, err := s.userRepo.GetByLogin(ctx, req.Login)
	if err != nil {
		return err
	}
	if !user.CheckVerificationCode(req.Code) {
		return apperror.NewValidation("reset code is invalid or expired").
			WithDetail("field", "code")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)
	user.VerificationCode = ""
	user.VerificationCodeExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// GetByID retrieves a user profile.
func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
