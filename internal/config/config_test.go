package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsZeroValue(t *testing.T) {
	cfg := Default()
	if cfg.StrictMode || cfg.TestMode || cfg.DiagnosticCap != 0 || cfg.AnnotationRegistryPath != "" {
		t.Fatalf("expected a zero-value config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbitsema.yaml")
	contents := "strict_mode: true\ntest_mode: false\ndiagnostic_cap: 50\nannotation_registry_path: ./extra.yaml\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictMode {
		t.Fatal("expected strict_mode to be true")
	}
	if cfg.DiagnosticCap != 50 {
		t.Fatalf("expected diagnostic_cap 50, got %d", cfg.DiagnosticCap)
	}
	if cfg.AnnotationRegistryPath != "./extra.yaml" {
		t.Fatalf("expected annotation_registry_path ./extra.yaml, got %q", cfg.AnnotationRegistryPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("strict_mode: [this is not a bool"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for invalid YAML")
	}
}
