// Package config provides the kconfgen user configuration file:
// default architecture, fragment fetch repository, and output settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFetchRepo is the repository fragments are fetched from when the
// user configures nothing else
const DefaultFetchRepo = "linux-surface/kernel-configs"

// UserConfig represents the user configuration
type UserConfig struct {
	DefaultArch *string `json:"defaultArch,omitempty"`
	FetchRepo   *string `json:"fetchRepo,omitempty"`
	NoColor     *bool   `json:"noColor,omitempty"`
	LogFile     *string `json:"logFile,omitempty"`
}

// Path returns the user config file location. KCONFGEN_CONFIG overrides the
// default of <user config dir>/kconfgen/config.json.
func Path() (string, error) {
	if override := os.Getenv("KCONFGEN_CONFIG"); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate user config directory: %w", err)
	}
	return filepath.Join(dir, "kconfgen", "config.json"), nil
}

// GetUserConfig reads the user configuration, returning defaults when no
// config file exists
func GetUserConfig() (*UserConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Config doesn't exist - return default
		return &UserConfig{}, nil
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}
	return &config, nil
}

// Save writes the user configuration
func (c *UserConfig) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, configJSON, 0600)
}

// GetDefaultArch returns the configured default architecture, or "" when
// unset
func (c *UserConfig) GetDefaultArch() string {
	if c.DefaultArch != nil {
		return *c.DefaultArch
	}
	return ""
}

// GetFetchRepo returns the owner and name of the fragment repository
func (c *UserConfig) GetFetchRepo() (owner, repo string) {
	full := DefaultFetchRepo
	if c.FetchRepo != nil && *c.FetchRepo != "" {
		full = *c.FetchRepo
	}
	owner, repo, ok := strings.Cut(full, "/")
	if !ok {
		return "", full
	}
	return owner, repo
}

// GetNoColor reports whether colors are disabled by configuration
func (c *UserConfig) GetNoColor() bool {
	return c.NoColor != nil && *c.NoColor
}

// GetLogFile returns the configured log file path, or "" when file logging
// is disabled
func (c *UserConfig) GetLogFile() string {
	if c.LogFile != nil {
		return *c.LogFile
	}
	return ""
}
