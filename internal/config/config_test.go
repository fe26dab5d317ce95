package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true")
	}
	if cfg.JWTSecret == "" {
		t.Error("JWTSecret not defaulted in development")
	}
	if cfg.JWTExpiry.Hours() != 24 {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET in production")
	}
}

func TestDSNAndAddr(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "shopdb")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := "postgres://shop:pw@db.internal:5433/shopdb?sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("DSN = %q, want %q", cfg.DSN(), want)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadRejectsBadExpiry(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_EXPIRY_HOURS", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric JWT_EXPIRY_HOURS")
	}
}
