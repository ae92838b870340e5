package auth

import (
	"testing"
	"time"
)

func testUser() *User {
	u := NewUser("alice", "alice@example.com", "hash")
	u.ID = 42
	return u
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) < 23*time.Hour {
		t.Errorf("expiry %v is shorter than the configured TTL", expiresAt)
	}

	uc, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if uc.UserID != 42 {
		t.Errorf("user id = %d, want 42", uc.UserID)
	}
	if uc.LoginID != "alice" || uc.Email != "alice@example.com" {
		t.Errorf("claims mismatch: %+v", uc)
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService(DefaultJWTConfig("secret-a")).GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewJWTService(DefaultJWTConfig("secret-b")).ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	token, _, err := NewJWTService(cfg).GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewJWTService(DefaultJWTConfig("test-secret")).ValidateToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
