package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/dvexamples/config"
	"github.com/s0up4200/dvexamples/dataverse"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	t.Setenv("DATAVERSE_BASE_URL", "")
	t.Setenv("DATAVERSE_API_KEY", "")
	t.Setenv("DATAVERSE_UNBLOCK_KEY", "")
	t.Setenv("DATAVERSE_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "dataverse.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInit(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\nunblockKey=open-sesame\n")

		a, err := Init(path, nil)
		require.NoError(t, err)

		cfg := a.Client.Config()
		assert.Equal(t, "https://demo.dataverse.org", a.Client.BaseURL())
		assert.Equal(t, "abc", cfg.APIKey)
		assert.Equal(t, "open-sesame", cfg.UnblockKey)
		assert.True(t, a.Client.HasUnblockKey())
		assert.Equal(t, "abc", a.Config.Dataverse.APIKey)
	})

	t.Run("fixed tuning values", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\n")

		a, err := Init(path, nil)
		require.NoError(t, err)

		cfg := a.Client.Config()
		assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
		assert.Equal(t, 300*time.Second, cfg.ReadTimeout)
		assert.Equal(t, "1", cfg.APIVersion)
		assert.Equal(t, 10, cfg.AwaitLockStateMaxRetries)
		assert.Equal(t, 500*time.Millisecond, cfg.AwaitLockStateInterval)
	})

	t.Run("tuning values are not read from the file", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\nreadTimeout=1\nconnectionTimeout=1\n")

		a, err := Init(path, nil)
		require.NoError(t, err)
		assert.Equal(t, dataverse.DefaultReadTimeout, a.Client.Config().ReadTimeout)
		assert.Equal(t, dataverse.DefaultConnectionTimeout, a.Client.Config().ConnectionTimeout)
	})

	t.Run("no unblock key", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\n")

		a, err := Init(path, nil)
		require.NoError(t, err)
		assert.False(t, a.Client.HasUnblockKey())
	})

	t.Run("missing baseUrl", func(t *testing.T) {
		path := writeConfig(t, "apiKey=abc\n")

		_, err := Init(path, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("malformed baseUrl", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo dataverse.org\napiKey=abc\n")

		_, err := Init(path, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, dataverse.ErrInvalidBaseURL)

		var syntaxErr *dataverse.URISyntaxError
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "https://demo dataverse.org", syntaxErr.Input)
	})

	t.Run("logger from logging settings", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\nlogging.level=debug\n")

		var got config.LoggingConfig
		a, err := Init(path, func(cfg config.LoggingConfig) (zerolog.Logger, error) {
			got = cfg
			return zerolog.Nop(), nil
		})
		require.NoError(t, err)
		assert.NotNil(t, a.Client)
		assert.Equal(t, "debug", got.Level)
	})

	t.Run("logger failure", func(t *testing.T) {
		path := writeConfig(t, "baseUrl=https://demo.dataverse.org\napiKey=abc\n")

		_, err := Init(path, func(config.LoggingConfig) (zerolog.Logger, error) {
			return zerolog.Nop(), errors.New("no log dir")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no log dir")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Init(filepath.Join(t.TempDir(), "missing.properties"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrLoad)
		assert.ErrorIs(t, err, config.ErrNotFound)
	})
}
