package plugin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for plugin loading.
type Config struct {
	// Manifest is the path of the YAML file listing managed files.
	Manifest string `mapstructure:"manifest" default:"plugins.yaml"`
}

// Entry describes one managed file in the manifest.
type Entry struct {
	// Key is the configuration key in the distributed store.
	Key string `yaml:"key"`
	// File is the path of the managed file.
	File string `yaml:"file"`
	// Service is the dependent service reloaded after an update.
	// Empty means the reconciler default.
	Service string `yaml:"service,omitempty"`
}

// Manifest is the parsed plugin manifest.
type Manifest struct {
	Plugins []Entry `yaml:"plugins"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Plugins))
	for i, e := range m.Plugins {
		if e.Key == "" {
			return nil, fmt.Errorf("manifest entry %d: key is required", i)
		}
		if e.File == "" {
			return nil, fmt.Errorf("manifest entry %q: file is required", e.Key)
		}
		if _, dup := seen[e.Key]; dup {
			return nil, fmt.Errorf("manifest entry %q: duplicate key", e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	return &m, nil
}
