package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio-secret")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.API.Port)
	}
	if cfg.Photo != DefaultPhoto() {
		t.Fatalf("expected default photo config, got %+v", cfg.Photo)
	}
	if cfg.Export.MarginMM != 7.5 || cfg.Export.PixelWidth != 794 || cfg.Export.PixelHeight != 1123 {
		t.Fatalf("unexpected export defaults %+v", cfg.Export)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.Session.TTL)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHOTO_MARGIN_RATIO", "1.5")
	t.Setenv("PHOTO_STRICT", "false")
	t.Setenv("API_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Photo.MarginRatio != 1.5 || cfg.Photo.Strict {
		t.Fatalf("overrides not applied: %+v", cfg.Photo)
	}
	if len(cfg.API.AllowedOrigins) != 2 || cfg.API.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %q", cfg.API.AllowedOrigins)
	}
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestValidateExportMargin(t *testing.T) {
	e := DefaultExport()
	if err := ValidateExport(e); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	e.MarginMM = 105
	if err := ValidateExport(e); err == nil {
		t.Fatal("expected error when margins consume the page")
	}
}

func TestValidatePhoto(t *testing.T) {
	p := DefaultPhoto()
	p.OutputSide = 0
	if err := ValidatePhoto(p); err == nil {
		t.Fatal("expected error for zero output side")
	}
	p = DefaultPhoto()
	p.Strict = false
	p.MinDimension = 0
	if err := ValidatePhoto(p); err != nil {
		t.Fatalf("lenient mode needs no min dimension: %v", err)
	}
}
