package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, ScopeUpload, 0)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token, ScopeUpload)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Scope != ScopeUpload {
		t.Errorf("expected scope %q, got %q", ScopeUpload, claims.Scope)
	}
	if claims.ID == "" {
		t.Error("expected a JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", ScopeUpload, 0)

	if _, err := ValidateToken("secret2", token, ScopeUpload); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenWrongScope(t *testing.T) {
	token, _ := GenerateToken("secret", "other", 0)

	if _, err := ValidateToken("secret", token, ScopeUpload); err == nil {
		t.Error("expected error for wrong scope")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token", ScopeUpload); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, _ := GenerateToken("secret", ScopeUpload, time.Nanosecond)
	time.Sleep(1100 * time.Millisecond)

	if _, err := ValidateToken("secret", token, ScopeUpload); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, _ := GenerateToken(secret, ScopeUpload, 0)
	claims, _ := ValidateToken(secret, token, ScopeUpload)

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := time.Now().Add(SessionExpiry)

	diff := expectedExpiry.Sub(expiresAt)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}
