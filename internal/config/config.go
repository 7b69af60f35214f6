package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds server settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `json:"addr"`
	// SSHAddr enables the SSH preview server when set.
	SSHAddr     string `json:"ssh_addr"`
	HostKeyPath string `json:"host_key"`
	LogLevel    string `json:"log_level"`
	// BaseURL prefixes share links encoded in QR codes.
	BaseURL string `json:"base_url"`
	// PresetsPath names an extra preset CSV merged over the builtin presets.
	PresetsPath string `json:"presets"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		HostKeyPath: "host_key",
		LogLevel:    "info",
		BaseURL:     "http://localhost:8080",
	}
}

// Load reads path (skipped if it doesn't exist) over the defaults, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	for env, field := range map[string]*string{
		"SSH_ADDR":  &cfg.SSHAddr,
		"HOST_KEY":  &cfg.HostKeyPath,
		"LOG_LEVEL": &cfg.LogLevel,
		"BASE_URL":  &cfg.BaseURL,
		"PRESETS":   &cfg.PresetsPath,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
	return cfg, nil
}
