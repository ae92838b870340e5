package auth

import (
	"context"
	"testing"
	"time"
)

func TestNewUser_NormalizesEmail(t *testing.T) {
	u := NewUser("  alice  ", "  Alice@Example.COM ", "hash")
	if u.LoginID != "alice" {
		t.Errorf("login = %q, want alice", u.LoginID)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", u.Email)
	}
	if u.EmailVerified {
		t.Error("new user must start unverified")
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		loginID string
		email   string
		wantErr bool
	}{
		{"valid", "alice", "alice@example.com", false},
		{"empty login", "", "alice@example.com", true},
		{"empty email", "alice", "", true},
		{"malformed email", "alice", "not-an-email", true},
		{"missing tld", "alice", "alice@example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUser(tt.loginID, tt.email, "hash")
			err := u.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUser_CheckVerificationCode(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "hash")

	if u.CheckVerificationCode("123456") {
		t.Error("user without a code must not verify")
	}

	u.SetVerificationCode("123456")
	if !u.CheckVerificationCode("123456") {
		t.Error("fresh code rejected")
	}
	if u.CheckVerificationCode("654321") {
		t.Error("wrong code accepted")
	}

	expired := time.Now().Add(-time.Minute)
	u.VerificationCodeExpiry = &expired
	if u.CheckVerificationCode("123456") {
		t.Error("expired code accepted")
	}
}

func TestUser_MarkVerified(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "hash")
	u.SetVerificationCode("123456")

	u.MarkVerified()
	if !u.EmailVerified {
		t.Error("not marked verified")
	}
	if u.VerificationCode != "" || u.VerificationCodeExpiry != nil {
		t.Error("code must be cleared after verification")
	}
	if u.CheckVerificationCode("123456") {
		t.Error("cleared code still accepted")
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not six digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains a non-digit", code)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("codes do not vary")
	}
}
