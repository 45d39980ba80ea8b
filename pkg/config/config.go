// Package config loads the application configuration: a JSON file under the
// user's home directory with environment variable overrides. A .env file in
// the working directory is honored before the environment is read.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string        `json:"anthropic_api_key"`
	Model           string        `json:"model,omitempty"`
	TimeoutSeconds  int           `json:"timeout_seconds,omitempty"`
	Defaults        DefaultConfig `json:"defaults,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	ResumeFile string `json:"resume_file,omitempty"`
}

const defaultTimeoutSeconds = 30

// Timeout returns the generation call timeout.
func (c *Config) Timeout() (timeout time.Duration) {
	seconds := c.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	timeout = time.Duration(seconds) * time.Second
	return timeout
}

// Load reads configuration from file with environment variable overrides. A
// missing config file is tolerated when ANTHROPIC_API_KEY is present in the
// environment.
func Load(configPath string) (cfg Config, err error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".cv-coach", "config.json")
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err):
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			err = errors.Errorf("config file not found: %s (run 'cv-coach init' to create)", path)
			return cfg, err
		}
		err = nil
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.AnthropicAPIKey = apiKey
	}
	if model := os.Getenv("CV_COACH_MODEL"); model != "" {
		cfg.Model = model
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.AnthropicAPIKey == "" {
		err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
		return err
	}
	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".cv-coach", "config.json")
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		AnthropicAPIKey: "sk-ant-api03-...",
		Model:           "",
		TimeoutSeconds:  defaultTimeoutSeconds,
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
