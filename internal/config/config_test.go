package config

import (
	"testing"
)

func TestLoadFailsWithoutSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset in production")
	}
}

func TestLoadUsesDevFallbackSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Errorf("expected dev fallback secret, got %q", cfg.JWTSecret)
	}
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
}

func TestLoadUsesConfiguredSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "configured-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWTSecret != "configured-secret" {
		t.Errorf("expected configured secret, got %q", cfg.JWTSecret)
	}
}
