package utils

import (
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if hash == password {
		t.Errorf("Expected hash to differ from plaintext")
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "supersecret"

	token, err := GenerateToken("123", TokenTypeAccess, secret, time.Minute, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, TokenTypeAccess, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.UserID != "123" {
		t.Errorf("Expected UserID 123, got %s", claims.UserID)
	}
	if !claims.Fresh {
		t.Errorf("Expected fresh access token")
	}

	if _, err := ValidateToken(token, TokenTypeAccess, "wrongsecret"); err == nil {
		t.Errorf("Expected error with wrong secret")
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	secret := "supersecret"

	refresh, err := GenerateToken("123", TokenTypeRefresh, secret, time.Minute, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ValidateToken(refresh, TokenTypeAccess, secret); err == nil {
		t.Errorf("Expected refresh token to be rejected as access token")
	}
	if _, err := ValidateToken(refresh, TokenTypeRefresh, secret); err != nil {
		t.Errorf("Expected refresh token to validate as refresh, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := "supersecret"

	token, err := GenerateToken("123", TokenTypeAccess, secret, -time.Minute, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ValidateToken(token, TokenTypeAccess, secret); err == nil {
		t.Errorf("Expected expired token to be rejected")
	}
}
