package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultAddr            = ":8000"
	DefaultRunnerURL       = "http://127.0.0.1:11434"
	DefaultLogLevel        = "info"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultTrendingURL     = "https://ollama.com/library?sort=popular"
	DefaultTrendingTimeout = 5
	DefaultTrendingLimit   = 8
	DefaultOCRModel        = "glm-ocr"
	DefaultOCRAccelerator  = "auto"
)

// Defaults returns a Config with every field set to its default.
func Defaults() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c where unset fields carry their defaults.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RunnerURL == "" {
		c.RunnerURL = DefaultRunnerURL
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.TrendingURL == "" {
		c.TrendingURL = DefaultTrendingURL
	}
	if c.TrendingTimeoutSeconds <= 0 {
		c.TrendingTimeoutSeconds = DefaultTrendingTimeout
	}
	if c.TrendingLimit <= 0 {
		c.TrendingLimit = DefaultTrendingLimit
	}
	if c.OCRModel == "" {
		c.OCRModel = DefaultOCRModel
	}
	if c.OCRAccelerator == "" {
		c.OCRAccelerator = DefaultOCRAccelerator
	}
	return c
}

// Validate reports the first invalid field of an already defaulted config.
func (c Config) Validate() error {
	u, err := url.Parse(c.RunnerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid runner_url %q", c.RunnerURL)
	}
	switch strings.ToLower(c.OCRAccelerator) {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid ocr_accelerator %q: want auto|on|off", c.OCRAccelerator)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
