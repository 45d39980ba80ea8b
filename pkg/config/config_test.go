package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CV_COACH_MODEL", "")

	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		AnthropicAPIKey: "test-key",
		Model:           "test-model",
		TimeoutSeconds:  15,
		Defaults: DefaultConfig{
			ResumeFile: "./cv.txt",
		},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Test loading the config.
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AnthropicAPIKey != testConfig.AnthropicAPIKey {
		t.Errorf("Expected API key %s, got %s", testConfig.AnthropicAPIKey, cfg.AnthropicAPIKey)
	}

	if cfg.Model != testConfig.Model {
		t.Errorf("Expected model %s, got %s", testConfig.Model, cfg.Model)
	}

	if cfg.Defaults.ResumeFile != testConfig.Defaults.ResumeFile {
		t.Errorf("Expected resume file %s, got %s", testConfig.Defaults.ResumeFile, cfg.Defaults.ResumeFile)
	}
}

func TestLoadNonexistent(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("CV_COACH_MODEL", "env-model")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		AnthropicAPIKey: "file-key",
		Model:           "file-model",
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AnthropicAPIKey != "env-key" {
		t.Errorf("Expected env var to override file key, got %s", cfg.AnthropicAPIKey)
	}

	if cfg.Model != "env-model" {
		t.Errorf("Expected env var to override file model, got %s", cfg.Model)
	}
}

func TestLoadMissingFileToleratedWithEnvKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("CV_COACH_MODEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Expected env key to stand in for a missing file, got %v", err)
	}

	if cfg.AnthropicAPIKey != "env-key" {
		t.Errorf("Expected key from environment, got %s", cfg.AnthropicAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name: "valid config",
			config: Config{
				AnthropicAPIKey: "test-key",
			},
			wantError: false,
		},
		{
			name:      "missing API key",
			config:    Config{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", cfg.Timeout())
	}

	cfg.TimeoutSeconds = 90
	if cfg.Timeout() != 90*time.Second {
		t.Errorf("Expected configured timeout, got %v", cfg.Timeout())
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// Verify file was created.
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Read and verify the config structure.
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if cfg.AnthropicAPIKey == "" {
		t.Error("Placeholder API key was not set")
	}

	if cfg.TimeoutSeconds != defaultTimeoutSeconds {
		t.Errorf("Expected default timeout in created config, got %d", cfg.TimeoutSeconds)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
