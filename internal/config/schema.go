package config

// Config holds outliner configuration.
// Stored at: ~/.outliner/config.yaml
type Config struct {
	Model    ModelCfg    `mapstructure:"model" yaml:"model"`
	OCR      OCRCfg      `mapstructure:"ocr" yaml:"ocr"`
	Pipeline PipelineCfg `mapstructure:"pipeline" yaml:"pipeline"`
}

// ModelCfg locates the structure classifier artifacts. Relative paths are
// resolved against the home directory; ${ENV_VAR} references are expanded.
type ModelCfg struct {
	Path       string `mapstructure:"path" yaml:"path"`               // Tree ensemble artifact
	LabelsPath string `mapstructure:"labels_path" yaml:"labels_path"` // Label mapping
}

// OCRCfg configures the scanned-page fallback.
type OCRCfg struct {
	Language string `mapstructure:"language" yaml:"language"` // Tesseract language string, e.g. "eng"
	Disabled bool   `mapstructure:"disabled" yaml:"disabled"` // Skip OCR entirely
}

// PipelineCfg configures batch processing.
type PipelineCfg struct {
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"` // 0 = one per CPU
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelCfg{
			Path:       "models/structure_model.json",
			LabelsPath: "models/label_encoder.json",
		},
		OCR: OCRCfg{
			Language: "eng",
		},
		Pipeline: PipelineCfg{
			MaxWorkers: 0,
		},
	}
}
