package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultFileName is looked up in the search paths when no file is given
const DefaultFileName = "dataverse.properties"

// Load loads the configuration from file. Environment variables
// DATAVERSE_BASE_URL, DATAVERSE_API_KEY and DATAVERSE_UNBLOCK_KEY override
// the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	path, err := findConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	values, err := readProperties(path)
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &cfg, nil
}

// searchPaths lists the directories checked for DefaultFileName
func searchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dvexamples"))
	}
	return append(paths, "/etc/dvexamples")
}

// findConfigFile resolves the file to read
func findConfigFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %w: %s", ErrLoad, ErrNotFound, configPath)
			}
			return "", fmt.Errorf("%w: %w", ErrLoad, err)
		}
		return configPath, nil
	}

	for _, dir := range searchPaths() {
		candidate := filepath.Join(dir, DefaultFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %w: %s not found in %v", ErrLoad, ErrNotFound, DefaultFileName, searchPaths())
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Optional keys need a default so Unmarshal sees env overrides
	v.SetDefault("unblockKey", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
}

// bindEnv maps the connection keys to their environment variables
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("baseUrl", "DATAVERSE_BASE_URL")
	_ = v.BindEnv("apiKey", "DATAVERSE_API_KEY")
	_ = v.BindEnv("unblockKey", "DATAVERSE_UNBLOCK_KEY")
	_ = v.BindEnv("logging.level", "DATAVERSE_LOG_LEVEL")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Dataverse.BaseURL == "" {
		return fmt.Errorf("baseUrl is required")
	}

	if cfg.Dataverse.APIKey == "" || cfg.Dataverse.APIKey == "your-api-key-here" {
		return fmt.Errorf("apiKey must be set to a valid API key")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
