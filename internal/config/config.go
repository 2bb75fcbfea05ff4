package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Audio      AudioConfig      `yaml:"audio"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Document   DocumentConfig   `yaml:"document"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	Port            int    `yaml:"port"`
	Address         string `yaml:"address"`
	ReadTimeout     int    `yaml:"read_timeout"`     // seconds
	WriteTimeout    int    `yaml:"write_timeout"`    // seconds
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
}

// AudioConfig contains audio ingestion parameters
type AudioConfig struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// RecognizerConfig contains offline recognition engine configuration
type RecognizerConfig struct {
	ModelPath string `yaml:"model_path"`
	LogLevel  int    `yaml:"log_level"` // engine-native verbosity, negative silences
}

// DocumentConfig contains document page geometry and rendering parameters
type DocumentConfig struct {
	PageSize    string  `yaml:"page_size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"`      // mm
	FontFamily  string  `yaml:"font_family"`
	FontSize    float64 `yaml:"font_size"`   // points
	LineHeight  float64 `yaml:"line_height"` // mm
	Placeholder string  `yaml:"placeholder"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate performs comprehensive validation of the configuration
func (c *Config) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.Recognizer.Validate(); err != nil {
		return fmt.Errorf("recognizer config: %w", err)
	}

	if err := c.Document.Validate(); err != nil {
		return fmt.Errorf("document config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates HTTP server configuration
func (h *HTTPConfig) Validate() error {
	if h.Port < 1 || h.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", h.Port)
	}

	if h.Address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if h.ReadTimeout < 1 {
		return fmt.Errorf("read_timeout must be at least 1 second, got %d", h.ReadTimeout)
	}

	if h.WriteTimeout < 1 {
		return fmt.Errorf("write_timeout must be at least 1 second, got %d", h.WriteTimeout)
	}

	if h.ShutdownTimeout < 1 {
		return fmt.Errorf("shutdown_timeout must be at least 1 second, got %d", h.ShutdownTimeout)
	}

	return nil
}

// Validate validates audio ingestion configuration
func (a *AudioConfig) Validate() error {
	if a.MaxUploadBytes < 1024 {
		return fmt.Errorf("max_upload_bytes must be at least 1024 bytes, got %d", a.MaxUploadBytes)
	}

	return nil
}

// Validate validates recognizer configuration
func (r *RecognizerConfig) Validate() error {
	if r.ModelPath == "" {
		return fmt.Errorf("model_path cannot be empty")
	}

	return nil
}

// Validate validates document rendering configuration
func (d *DocumentConfig) Validate() error {
	validSizes := map[string]bool{"A3": true, "A4": true, "A5": true, "Letter": true, "Legal": true}
	if !validSizes[d.PageSize] {
		return fmt.Errorf("page_size must be one of [A3, A4, A5, Letter, Legal], got '%s'", d.PageSize)
	}

	if d.Orientation != "P" && d.Orientation != "L" {
		return fmt.Errorf("orientation must be 'P' or 'L', got '%s'", d.Orientation)
	}

	if d.Margin <= 0 {
		return fmt.Errorf("margin must be positive, got %f", d.Margin)
	}

	validFonts := map[string]bool{"Arial": true, "Helvetica": true, "Courier": true, "Times": true}
	if !validFonts[d.FontFamily] {
		return fmt.Errorf("font_family must be one of [Arial, Helvetica, Courier, Times], got '%s'", d.FontFamily)
	}

	if d.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %f", d.FontSize)
	}

	if d.LineHeight <= 0 {
		return fmt.Errorf("line_height must be positive, got %f", d.LineHeight)
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// GetReadTimeout returns the HTTP read timeout as a time.Duration
func (h *HTTPConfig) GetReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the HTTP write timeout as a time.Duration
func (h *HTTPConfig) GetWriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the graceful shutdown timeout as a time.Duration
func (h *HTTPConfig) GetShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeout) * time.Second
}
