// Package app wires the configuration file to a Dataverse client. The
// resulting App is created once by the entry point and handed to whatever
// needs the client.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/dvexamples/config"
	"github.com/s0up4200/dvexamples/dataverse"
)

// App holds the loaded configuration and the client built from it
type App struct {
	Config *config.Config
	Client *dataverse.Client
	Logger zerolog.Logger
}

// LoggerFunc builds the application logger from the logging settings
type LoggerFunc func(cfg config.LoggingConfig) (zerolog.Logger, error)

// Init loads the configuration at configPath (or the default search paths
// when empty) and builds the Dataverse client. A nil newLogger discards
// logs. Failures wrap config.ErrLoad, config.ErrInvalid or
// dataverse.ErrInvalidBaseURL.
func Init(configPath string, newLogger LoggerFunc, opts ...dataverse.Option) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if newLogger != nil {
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	client, err := NewClient(cfg.Dataverse, logger, opts...)
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Client: client, Logger: logger}, nil
}

// NewClient builds a client from already loaded connection settings
func NewClient(cfg config.DataverseConfig, logger zerolog.Logger, opts ...dataverse.Option) (*dataverse.Client, error) {
	instance, err := dataverse.NewInstanceConfig(cfg.BaseURL, cfg.APIKey, cfg.UnblockKey)
	if err != nil {
		return nil, fmt.Errorf("failed to configure Dataverse instance: %w", err)
	}

	client, err := dataverse.NewClient(instance, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Dataverse client: %w", err)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Bool("unblock_key", client.HasUnblockKey()).
		Msg("Dataverse client ready")

	return client, nil
}
