package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:            8080,
			Address:         "0.0.0.0",
			ReadTimeout:     30,
			WriteTimeout:    120,
			ShutdownTimeout: 10,
		},
		Audio: AudioConfig{
			MaxUploadBytes: 50 << 20,
		},
		Recognizer: RecognizerConfig{
			ModelPath: "models/test-model",
		},
		Document: DocumentConfig{
			PageSize:    "A4",
			Orientation: "P",
			Margin:      10,
			FontFamily:  "Arial",
			FontSize:    12,
			LineHeight:  10,
			Placeholder: "No speech detected.",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid configuration",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "invalid http port",
			mutate:      func(c *Config) { c.HTTP.Port = 0 },
			expectError: true,
			errorMsg:    "port must be between",
		},
		{
			name:        "empty http address",
			mutate:      func(c *Config) { c.HTTP.Address = "" },
			expectError: true,
			errorMsg:    "address cannot be empty",
		},
		{
			name:        "zero read timeout",
			mutate:      func(c *Config) { c.HTTP.ReadTimeout = 0 },
			expectError: true,
			errorMsg:    "read_timeout",
		},
		{
			name:        "upload limit too small",
			mutate:      func(c *Config) { c.Audio.MaxUploadBytes = 100 },
			expectError: true,
			errorMsg:    "max_upload_bytes",
		},
		{
			name:        "missing model path",
			mutate:      func(c *Config) { c.Recognizer.ModelPath = "" },
			expectError: true,
			errorMsg:    "model_path cannot be empty",
		},
		{
			name:        "unknown page size",
			mutate:      func(c *Config) { c.Document.PageSize = "Tabloid" },
			expectError: true,
			errorMsg:    "page_size",
		},
		{
			name:        "bad orientation",
			mutate:      func(c *Config) { c.Document.Orientation = "X" },
			expectError: true,
			errorMsg:    "orientation",
		},
		{
			name:        "negative margin",
			mutate:      func(c *Config) { c.Document.Margin = -1 },
			expectError: true,
			errorMsg:    "margin must be positive",
		},
		{
			name:        "unknown font",
			mutate:      func(c *Config) { c.Document.FontFamily = "ComicSans" },
			expectError: true,
			errorMsg:    "font_family",
		},
		{
			name:        "zero line height",
			mutate:      func(c *Config) { c.Document.LineHeight = 0 },
			expectError: true,
			errorMsg:    "line_height must be positive",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			expectError: true,
			errorMsg:    "level must be one of",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			expectError: true,
			errorMsg:    "format must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected validation error containing %q", tt.errorMsg)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing %q, got: %v", tt.errorMsg, err)
				}
			} else if err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	content := `
http:
  port: 9090
  address: "127.0.0.1"
  read_timeout: 15
  write_timeout: 60
  shutdown_timeout: 5

audio:
  max_upload_bytes: 10485760

recognizer:
  model_path: "models/vosk-model-small-en-us-0.15"
  log_level: -1

document:
  page_size: "Letter"
  orientation: "P"
  margin: 12.5
  font_family: "Courier"
  font_size: 11.0
  line_height: 8.0
  placeholder: "Nothing recognized."

logging:
  level: "debug"
  format: "text"
  output: "stderr"
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.HTTP.Port)
	}

	if cfg.Audio.MaxUploadBytes != 10485760 {
		t.Errorf("Expected 10485760 max upload bytes, got %d", cfg.Audio.MaxUploadBytes)
	}

	if cfg.Recognizer.ModelPath != "models/vosk-model-small-en-us-0.15" {
		t.Errorf("Unexpected model path: %s", cfg.Recognizer.ModelPath)
	}

	if cfg.Recognizer.LogLevel != -1 {
		t.Errorf("Expected log level -1, got %d", cfg.Recognizer.LogLevel)
	}

	if cfg.Document.PageSize != "Letter" || cfg.Document.FontFamily != "Courier" {
		t.Errorf("Unexpected document config: %+v", cfg.Document)
	}

	if cfg.Document.Placeholder != "Nothing recognized." {
		t.Errorf("Unexpected placeholder: %s", cfg.Document.Placeholder)
	}

	if cfg.HTTP.GetReadTimeout() != 15*time.Second {
		t.Errorf("Expected 15s read timeout, got %v", cfg.HTTP.GetReadTimeout())
	}

	if cfg.HTTP.GetShutdownTimeout() != 5*time.Second {
		t.Errorf("Expected 5s shutdown timeout, got %v", cfg.HTTP.GetShutdownTimeout())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http: [not: valid"), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	// Parses fine but fails validation (no model path)
	content := `
http:
  port: 8080
  address: "0.0.0.0"
  read_timeout: 30
  write_timeout: 60
  shutdown_timeout: 10
audio:
  max_upload_bytes: 1048576
recognizer:
  model_path: ""
document:
  page_size: "A4"
  orientation: "P"
  margin: 10
  font_family: "Arial"
  font_size: 12
  line_height: 10
logging:
  level: "info"
  format: "json"
  output: "stdout"
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "model_path") {
		t.Errorf("Expected model_path validation error, got: %v", err)
	}
}
