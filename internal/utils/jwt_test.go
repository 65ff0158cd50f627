package utils

import (
	"testing"

	"psychcare-server/internal/config"
	"psychcare-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test-access-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 24,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "7f9c24e5-2f9a-4b6a-9f1d-1c2b3a4d5e6f"

	access, refresh, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := ValidateToken(access, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken(access): %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Role != models.RoleDoctor {
		t.Errorf("Role = %q, want doctor", claims.Role)
	}

	if _, err := ValidateToken(refresh, cfg.JWTRefreshSecret); err != nil {
		t.Errorf("ValidateToken(refresh): %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RolePatient}
	user.ID = "user-1"

	access, _, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}

	if _, err := ValidateToken(access, "some-other-secret"); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
	// Access tokens must not validate against the refresh secret.
	if _, err := ValidateToken(access, cfg.JWTRefreshSecret); err == nil {
		t.Error("expected validation failure against refresh secret")
	}
}
