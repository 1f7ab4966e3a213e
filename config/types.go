package config

// Config represents the complete configuration structure
type Config struct {
	Dataverse DataverseConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DataverseConfig holds the Dataverse instance connection details
type DataverseConfig struct {
	BaseURL    string `mapstructure:"baseUrl"`
	APIKey     string `mapstructure:"apiKey"`
	UnblockKey string `mapstructure:"unblockKey"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	// File, when set, also writes logs to a rotated file
	File string `mapstructure:"file"`
}
