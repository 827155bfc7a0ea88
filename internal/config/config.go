// Package config loads analyzer configuration from YAML (§6 "Environment").
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// AnalyzerConfig holds the analyzer's configuration toggles.
type AnalyzerConfig struct {
	// StrictMode makes the orbitsema CLI fail a run that reported any
	// warning-level diagnostic. Analyzer.Succeeded and AnalyzeProgram count
	// only error-level diagnostics, whatever its value.
	StrictMode bool `yaml:"strict_mode"`
	// TestMode is stored on the Analyzer, but no analysis step reads it:
	// it changes no typing rule and no result.
	TestMode bool `yaml:"test_mode"`
	// DiagnosticCap bounds how many diagnostics the engine stores before it
	// starts only counting drops (§4.7). Zero means use the engine default.
	DiagnosticCap int `yaml:"diagnostic_cap"`
	// AnnotationRegistryPath optionally points at a YAML file of additional
	// annotation schemas merged into the built-in registry.
	AnnotationRegistryPath string `yaml:"annotation_registry_path"`
}

// Default returns the zero-value configuration: non-strict, non-test,
// default diagnostic cap, no extra annotation registry.
func Default() AnalyzerConfig {
	return AnalyzerConfig{}
}

// Load reads an AnalyzerConfig from a YAML file at path.
func Load(path string) (AnalyzerConfig, error) {
	var cfg AnalyzerConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
