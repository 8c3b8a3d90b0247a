package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BoletinBaseURL != "https://boletinconcursal.cl" {
		t.Errorf("unexpected default boletin URL: %s", cfg.BoletinBaseURL)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "no-such.json5"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.DatasetPath != "data/remates.json" {
		t.Errorf("unexpected default dataset path: %s", cfg.DatasetPath)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rematierra.json5")

	// json5: comments and trailing commas allowed
	content := `{
		// local mirror for tests
		boletin_base_url: "http://localhost:8080",
		match_fields: ["descripcion"],
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BoletinBaseURL != "http://localhost:8080" {
		t.Errorf("override not applied: %s", cfg.BoletinBaseURL)
	}
	if len(cfg.MatchFields) != 1 || cfg.MatchFields[0] != "descripcion" {
		t.Errorf("match fields override not applied: %v", cfg.MatchFields)
	}
	// Untouched settings keep defaults.
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Errorf("default timeout lost: %d", cfg.HTTPTimeoutSeconds)
	}
}

func TestLoad_LocalFileWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rematierra.json5")

	if err := os.WriteFile(path, []byte(`{boletin_base_url: "http://a"}`), 0644); err != nil {
		t.Fatal(err)
	}
	local := filepath.Join(dir, "rematierra.local.json5")
	if err := os.WriteFile(local, []byte(`{boletin_base_url: "http://b"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BoletinBaseURL != "http://b" {
		t.Errorf("local override should win, got %s", cfg.BoletinBaseURL)
	}
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rematierra.json5")
	if err := os.WriteFile(path, []byte("{not valid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for broken config file")
	}
}
