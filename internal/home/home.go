// Package home manages the outliner home directory layout: configuration
// and trained model artifacts.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the outliner home directory.
	DefaultDirName = ".outliner"

	// ModelsDirName is the subdirectory for trained model artifacts.
	ModelsDirName = "models"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// ModelFileName is the structure classifier artifact.
	ModelFileName = "structure_model.json"

	// LabelsFileName is the classifier's label mapping.
	LabelsFileName = "label_encoder.json"
)

// Dir represents the outliner home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.outliner).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ModelsPath returns the path to the models directory.
func (d *Dir) ModelsPath() string {
	return filepath.Join(d.path, ModelsDirName)
}

// ModelPath returns the path to the structure classifier artifact.
func (d *Dir) ModelPath() string {
	return filepath.Join(d.ModelsPath(), ModelFileName)
}

// LabelsPath returns the path to the label mapping artifact.
func (d *Dir) LabelsPath() string {
	return filepath.Join(d.ModelsPath(), LabelsFileName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.ModelsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// Resolve makes a possibly-relative artifact path absolute against the home
// directory. Absolute paths pass through unchanged.
func (d *Dir) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.path, path)
}
