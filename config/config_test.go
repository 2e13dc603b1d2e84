package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("expected MaxDepth=64, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Parser.AttachComments {
		t.Error("expected AttachComments=true")
	}
	if len(cfg.Index.Includes) == 0 {
		t.Error("expected default include globs")
	}
	if len(cfg.Macros.Declaration) == 0 || len(cfg.Macros.Body) == 0 {
		t.Error("expected default macro tables")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected Format=json, got %s", cfg.Output.Format)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "declex.yaml")

	content := `
parser:
  max_depth: 16
macros:
  declaration: [Q_PROPERTY]
  body: [Q_OBJECT]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Parser.MaxDepth != 16 {
		t.Errorf("expected MaxDepth=16, got %d", cfg.Parser.MaxDepth)
	}
	if len(cfg.Macros.Declaration) != 1 || cfg.Macros.Declaration[0] != "Q_PROPERTY" {
		t.Errorf("expected declaration macros overridden, got %v", cfg.Macros.Declaration)
	}
	if len(cfg.Macros.Body) != 1 || cfg.Macros.Body[0] != "Q_OBJECT" {
		t.Errorf("expected body macros overridden, got %v", cfg.Macros.Body)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "declex.yaml")

	content := `
output:
  format: text
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("expected Format=text, got %s", cfg.Output.Format)
	}
}

func TestIndexDBPath(t *testing.T) {
	path := IndexDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".declex", "symbols.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
