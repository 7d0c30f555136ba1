package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Session.FirstTargetActiveOnMount {
		t.Error("FirstTargetActiveOnMount default = false, want true")
	}
	if cfg.Session.PollInterval != 0 {
		t.Errorf("PollInterval default = %v, want 0 (disabled)", cfg.Session.PollInterval)
	}
	if got := cfg.ZoneSpec().ResolveRows(40); got != 20 {
		t.Errorf("default zone on 40-row viewport = %d rows, want 20", got)
	}
	if got := cfg.Threshold("anything"); got != 0.5 {
		t.Errorf("Threshold(unlisted) = %v, want 0.5", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
zone:
  rows: 6
  offset: 2
session:
  first_target_active_on_mount: false
  poll_interval: 2s
thresholds:
  intro: 0.3
  api: 0.8
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Session.FirstTargetActiveOnMount {
		t.Error("first_target_active_on_mount not applied")
	}
	if cfg.Session.PollInterval.Std() != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.Session.PollInterval)
	}
	if got := cfg.ZoneSpec().ResolveRows(100); got != 6 {
		t.Errorf("zone rows = %d, want 6", got)
	}
	if got := cfg.Threshold("intro"); got != 0.3 {
		t.Errorf("Threshold(intro) = %v, want 0.3", got)
	}
	if got := cfg.Threshold("other"); got != 0.5 {
		t.Errorf("Threshold(other) = %v, want default 0.5", got)
	}
	// Mirror throttle keeps its default when the file omits it.
	if cfg.Mirror.Throttle.Std() != 100*time.Millisecond {
		t.Errorf("Mirror.Throttle = %v, want default 100ms", cfg.Mirror.Throttle)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
thresholds:
  intro: 0.95
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Error("Load() accepted a threshold outside [0.1, 0.9]")
	}
}

func TestLoadRejectsContradictoryZone(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
zone:
  rows: 6
  percent: 50
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Error("Load() accepted a zone with both rows and percent")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() on a missing file should error")
	}
}
