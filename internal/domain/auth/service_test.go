package auth

import (
	"context"
	"testing"

	"stockpile/internal/core/apperror"
)

type fakeUserRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID int64) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByLogin(ctx context.Context, login string) (*User, error) {
	for _, user := range r.users {
		if user.LoginID == login || user.Email == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("user", login)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperror.NewNotFound("user", user.ID)
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) ExistsByLogin(ctx context.Context, loginID string) (bool, error) {
	for _, user := range r.users {
		if user.LoginID == loginID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeProvisioner struct {
	provisioned []int64
}

func (p *fakeProvisioner) EnsureTenant(ctx context.Context, userID int64) error {
	p.provisioned = append(p.provisioned, userID)
	return nil
}

type fakeSender struct {
	emails []string
	codes  []string
}

func (s *fakeSender) SendCode(ctx context.Context, email, code string) error {
	s.emails = append(s.emails, email)
	s.codes = append(s.codes, code)
	return nil
}

func (s *fakeSender) lastCode() string {
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[len(s.codes)-1]
}

type authFixture struct {
	svc         *Service
	repo        *fakeUserRepo
	provisioner *fakeProvisioner
	sender      *fakeSender
}

func newAuthFixture() *authFixture {
	repo := newFakeUserRepo()
	provisioner := &fakeProvisioner{}
	sender := &fakeSender{}
	svc := NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")), provisioner, sender, DefaultServiceConfig())
	return &authFixture{svc: svc, repo: repo, provisioner: provisioner, sender: sender}
}

func (f *authFixture) register(t *testing.T) *User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), RegisterRequest{
		LoginID:  "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegister_ProvisionsTenantAndSendsCode(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t)
	if user.ID == 0 {
		t.Error("user id not assigned")
	}
	if user.EmailVerified {
		t.Error("new account must start unverified")
	}
	if len(f.provisioner.provisioned) != 1 || f.provisioner.provisioned[0] != user.ID {
		t.Errorf("tenant database not provisioned for user %d", user.ID)
	}
	if len(f.sender.codes) != 1 {
		t.Fatalf("verification codes sent = %d, want 1", len(f.sender.codes))
	}
	if f.sender.emails[0] != "alice@example.com" {
		t.Errorf("code sent to %q", f.sender.emails[0])
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		LoginID:  "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_RejectsTakenLogin(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		LoginID:  "alice",
		Email:    "other@example.com",
		Password: "correct horse",
	})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Errorf("expected %s, got %v", apperror.CodeDuplicate, err)
	}
}

func TestLogin_RequiresVerifiedEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, _, err := f.svc.Login(context.Background(), Credentials{Login: "alice", Password: "correct horse"})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeForbidden {
		t.Errorf("expected %s before verification, got %v", apperror.CodeForbidden, err)
	}
}

func TestVerifyThenLogin(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: f.sender.lastCode()}); err != nil {
		t.Fatalf("verify: %v", err)
	}

	pair, user, err := f.svc.Login(context.Background(), Credentials{Login: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.TokenType != "Bearer" {
		t.Errorf("unexpected token pair: %+v", pair)
	}
	if !user.EmailVerified {
		t.Error("user not verified after VerifyEmail")
	}

	// Email works as the login too
	if _, _, err := f.svc.Login(context.Background(), Credentials{Login: "alice@example.com", Password: "correct horse"}); err != nil {
		t.Errorf("login by email: %v", err)
	}
}

func TestVerifyEmail_RejectsWrongCode(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: "000000"})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: f.sender.lastCode()}); err != nil {
		t.Fatalf("verify: %v", err)
	}

	_, _, err := f.svc.Login(context.Background(), Credentials{Login: "alice", Password: "wrong"})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeUnauthorized {
		t.Errorf("expected %s, got %v", apperror.CodeUnauthorized, err)
	}

	// Unknown accounts get the same answer as wrong passwords
	_, _, err = f.svc.Login(context.Background(), Credentials{Login: "nobody", Password: "wrong"})
	appErr, ok = apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeUnauthorized {
		t.Errorf("expected %s for unknown login, got %v", apperror.CodeUnauthorized, err)
	}
}

func TestResendCode_RotatesCode(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	first := f.sender.lastCode()

	if err := f.svc.ResendCode(context.Background(), "alice"); err != nil {
		t.Fatalf("resend: %v", err)
	}
	second := f.sender.lastCode()

	// The old code is superseded
	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: first}); err == nil && first != second {
		t.Error("superseded code still accepted")
	}
	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: second}); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}

func TestResendCode_RejectsVerifiedAccount(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: f.sender.lastCode()}); err != nil {
		t.Fatalf("verify: %v", err)
	}

	err := f.svc.ResendCode(context.Background(), "alice")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeConflict {
		t.Errorf("expected %s, got %v", apperror.CodeConflict, err)
	}
}

func TestPasswordReset_FullFlow(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	if err := f.svc.VerifyEmail(context.Background(), VerifyRequest{Login: "alice", Code: f.sender.lastCode()}); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := f.svc.RequestPasswordReset(context.Background(), "alice"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	err := f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Login:       "alice",
		Code:        f.sender.lastCode(),
		NewPassword: "battery staple",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, _, err := f.svc.Login(context.Background(), Credentials{Login: "alice", Password: "correct horse"}); err == nil {
		t.Error("old password still accepted")
	}
	if _, _, err := f.svc.Login(context.Background(), Credentials{Login: "alice", Password: "battery staple"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestRequestPasswordReset_UnknownLoginIsSilent(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.RequestPasswordReset(context.Background(), "nobody"); err != nil {
		t.Errorf("unknown login must not be distinguishable: %v", err)
	}
	if len(f.sender.codes) != 0 {
		t.Error("no code should be sent for unknown accounts")
	}
}
