package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.General.PageSize != 25 {
		t.Errorf("expected default page size 25, got %d", cfg.General.PageSize)
	}
	if cfg.General.DefaultContentType != "alumni" {
		t.Errorf("expected default content type alumni, got %s", cfg.General.DefaultContentType)
	}
	if cfg.UI.MotionTier != "full" {
		t.Errorf("expected default motion tier full, got %s", cfg.UI.MotionTier)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "general:\n  page_size: 10\nui:\n  theme: highcontrast\n  motion_tier: static\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.General.PageSize != 10 {
		t.Errorf("expected page size 10 from file, got %d", cfg.General.PageSize)
	}
	if cfg.UI.Theme != "highcontrast" {
		t.Errorf("expected theme highcontrast, got %s", cfg.UI.Theme)
	}
	if cfg.UI.MotionTier != "static" {
		t.Errorf("expected motion tier static, got %s", cfg.UI.MotionTier)
	}
	// Sections not in the file keep their defaults.
	if cfg.Session.MaxAgeHours != 24 {
		t.Errorf("expected default session max age, got %d", cfg.Session.MaxAgeHours)
	}
}

func TestSessionDBPath_ExplicitWins(t *testing.T) {
	cfg := GetDefaults()
	cfg.Session.DBPath = "/tmp/kiosk-session.db"
	path, err := cfg.SessionDBPath()
	if err != nil {
		t.Fatalf("SessionDBPath failed: %v", err)
	}
	if path != "/tmp/kiosk-session.db" {
		t.Errorf("expected explicit path to win, got %s", path)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	return func() { _ = os.Chdir(old) }
}
