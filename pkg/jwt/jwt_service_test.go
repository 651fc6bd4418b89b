package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateTokenUser_RoundTrip(t *testing.T) {
	svc := NewJWTService()
	userID := uuid.NewString()

	token := svc.GenerateTokenUser(userID, "member")
	if token == "" {
		t.Fatal("GenerateTokenUser returned empty token")
	}

	gotID, gotRole, err := svc.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("GetUserIDByToken: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %q, want %q", gotID, userID)
	}
	if gotRole != "member" {
		t.Errorf("role = %q, want member", gotRole)
	}
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	svc := NewJWTService()

	if _, _, err := svc.GetUserIDByToken("not.a.token"); err == nil {
		t.Fatal("garbage token should not validate")
	}
}

func TestResetPasswordToken_RoundTrip(t *testing.T) {
	svc := NewJWTService()
	userID := uuid.NewString()

	token, err := svc.GenerateTokenResetPassword(userID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateTokenResetPassword: %v", err)
	}

	gotID, err := svc.ValidateTokenResetPassword(token)
	if err != nil {
		t.Fatalf("ValidateTokenResetPassword: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %q, want %q", gotID, userID)
	}
}

func TestResetPasswordToken_Expired(t *testing.T) {
	svc := NewJWTService()

	token, err := svc.GenerateTokenResetPassword(uuid.NewString(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateTokenResetPassword: %v", err)
	}
	if _, err := svc.ValidateTokenResetPassword(token); err == nil {
		t.Fatal("expired reset token should not validate")
	}
}
