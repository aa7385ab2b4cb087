package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f2f.yaml")
	doc := []byte("log:\n  level: debug\nforms:\n  file: forms.yaml\ntheme:\n  name: paper\n  tokens:\n    accent: \"#123456\"\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("F2F_OUTPUT_FORMAT", "html")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Log:    LogConfig{Level: "debug", Format: "text"},
		Forms:  FormsConfig{File: "forms.yaml"},
		Theme:  ThemeConfig{Name: "paper", Tokens: map[string]string{"accent": "#123456"}},
		Output: OutputConfig{Format: FormatHTML},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing file")
	}

	path := filepath.Join(t.TempDir(), "f2f.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("F2F_OUTPUT_FORMAT", "pdf")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load must leave validation to the caller: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected output format error")
	}
	cfg.Output.Format = FormatHTML
	if err := cfg.Validate(); err != nil {
		t.Fatalf("override should make the config valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Output: OutputConfig{Format: FormatTerm}, Forms: FormsConfig{OpenAPI: "api.yaml"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing operation error")
	}
	cfg.Forms.Operation = "listPets"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
