// Package config loads and validates the YAML configuration shared by the
// command-line converter and the watch daemon.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scalehouse/scalehouse/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxCompanyNameLength = 100
	MaxCompanyInfoLength = 200
	MaxPathLength        = 4096
	MaxURLLength         = 2048
)

// Config holds all configuration for document generation.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Output  OutputConfig  `yaml:"output"`
	Company CompanyConfig `yaml:"company"`
	Watch   WatchConfig   `yaml:"watch"`
}

// DataConfig locates the render assets (fonts and logo).
type DataConfig struct {
	Dir string `yaml:"dir"` // Asset directory (empty = ./data)
}

// OutputConfig defines where rendered PDFs land.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Default output directory (empty = same as input)
}

// CompanyConfig overrides the company block printed in the page header.
// Empty fields keep whatever the mail carries.
type CompanyConfig struct {
	Name string `yaml:"name"`
	Info string `yaml:"info"`
}

// WatchConfig configures the daemon's inbox watcher. Ignored by the
// one-shot CLI.
type WatchConfig struct {
	InboxDir   string `yaml:"inboxDir"`   // Directory to watch for incoming mails
	DeliverURL string `yaml:"deliverURL"` // Optional HTTP endpoint to POST finished PDFs to
	Workers    int    `yaml:"workers"`    // Conversion workers (0 = auto)
}

// Validate checks field lengths and value ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("data.dir", c.Data.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("company.name", c.Company.Name, MaxCompanyNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("company.info", c.Company.Info, MaxCompanyInfoLength); err != nil {
		return err
	}
	if err := validateFieldLength("watch.inboxDir", c.Watch.InboxDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("watch.deliverURL", c.Watch.DeliverURL, MaxURLLength); err != nil {
		return err
	}
	if c.Watch.DeliverURL != "" &&
		!strings.HasPrefix(c.Watch.DeliverURL, "http://") &&
		!strings.HasPrefix(c.Watch.DeliverURL, "https://") {
		return fmt.Errorf("watch.deliverURL: must be an http(s) URL, got %q", c.Watch.DeliverURL)
	}
	if c.Watch.Workers < 0 {
		return fmt.Errorf("watch.workers: must be non-negative, got %d", c.Watch.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{Dir: "data"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/scalehouse/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "scalehouse", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
