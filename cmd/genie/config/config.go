package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds user preferences for new sessions. Session secrets
// never land here: the API key lives only in process memory and
// environment variables.
type Config struct {
	Theme    string `json:"theme"`    // "auto", "light", or "dark"
	Provider string `json:"provider"` // "gemini", "openai", "openrouter", "mock"
	Model    string `json:"model"`    // empty uses the provider default
	Persona  string `json:"persona"`  // default persona id
	Language string `json:"language"` // default reply language
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:    "auto",
		Provider: "gemini",
		Persona:  "general",
		Language: "English",
	}
}

// ConfigDir returns the directory where config and logs are stored.
// GENIETALK_CONFIG_DIR overrides the default ~/.genietalk.
func ConfigDir() (string, error) {
	if dir := os.Getenv("GENIETALK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".genietalk"), nil
}

// ConfigFile returns the full path to the config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogFile returns the path the interactive chat logs to.
func LogFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "genie.log"), nil
}

// Load reads the configuration from disk. A missing file is not an
// error; defaults are returned.
func Load() (Config, error) {
	path, err := ConfigFile()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
