package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model.Path != "models/structure_model.json" {
		t.Errorf("model path: got %q", cfg.Model.Path)
	}
	if cfg.Model.LabelsPath != "models/label_encoder.json" {
		t.Errorf("labels path: got %q", cfg.Model.LabelsPath)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("ocr language: got %q", cfg.OCR.Language)
	}
	if cfg.OCR.Disabled {
		t.Error("ocr should be enabled by default")
	}
	if cfg.Pipeline.MaxWorkers != 0 {
		t.Errorf("max workers: got %d, want 0 (auto)", cfg.Pipeline.MaxWorkers)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("OUTLINER_TEST_DIR", "/srv/models")

	tests := []struct {
		in, out string
	}{
		{"${OUTLINER_TEST_DIR}/model.json", "/srv/models/model.json"},
		{"no variables here", "no variables here"},
		{"", ""},
		{"${OUTLINER_TEST_UNSET}/model.json", "/model.json"},
	}
	for _, tt := range tests {
		if got := ResolveEnvVars(tt.in); got != tt.out {
			t.Errorf("ResolveEnvVars(%q): got %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if cfg.Model.Path != DefaultConfig().Model.Path {
		t.Errorf("round-tripped model path: got %q", cfg.Model.Path)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("round-tripped ocr language: got %q", cfg.OCR.Language)
	}
}
