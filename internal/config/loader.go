package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults via WithDefaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	RunnerURL    string   `json:"runner_url" yaml:"runner_url" toml:"runner_url"`
	DefaultModel string   `json:"default_model" yaml:"default_model" toml:"default_model"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	TrendingURL            string `json:"trending_url" yaml:"trending_url" toml:"trending_url"`
	TrendingTimeoutSeconds int    `json:"trending_timeout_seconds" yaml:"trending_timeout_seconds" toml:"trending_timeout_seconds"`
	TrendingLimit          int    `json:"trending_limit" yaml:"trending_limit" toml:"trending_limit"`

	OCRModel       string   `json:"ocr_model" yaml:"ocr_model" toml:"ocr_model"`
	OCRAccelerator string   `json:"ocr_accelerator" yaml:"ocr_accelerator" toml:"ocr_accelerator"`
	OCRLanguages   []string `json:"ocr_languages" yaml:"ocr_languages" toml:"ocr_languages"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
