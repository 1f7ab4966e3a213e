package cmd

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/dvexamples/config"
	"github.com/s0up4200/dvexamples/dataverse"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "trace", want: zerolog.TraceLevel},
		{name: "DEBUG", want: zerolog.DebugLevel},
		{name: "", want: zerolog.InfoLevel},
		{name: "info", want: zerolog.InfoLevel},
		{name: "warn", want: zerolog.WarnLevel},
		{name: "error", want: zerolog.ErrorLevel},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	t.Run("writes to log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dvexamples.log")

		l, err := setupLogger(config.LoggingConfig{Level: "info", Format: "json", File: path})
		require.NoError(t, err)
		l.Info().Str("pid", "doi:10.5072/FK2/ABC").Msg("hello")
		l.Debug().Msg("filtered out")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"pid":"doi:10.5072/FK2/ABC"`)
		assert.NotContains(t, string(data), "filtered out")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := setupLogger(config.LoggingConfig{Level: "loud"})
		assert.Error(t, err)
	})
}

func TestAdminError(t *testing.T) {
	err := adminError(dataverse.ErrNoUnblockKey)
	assert.ErrorIs(t, err, dataverse.ErrNoUnblockKey)
	assert.Contains(t, err.Error(), "unblockKey")

	other := errors.New("boom")
	assert.Equal(t, other, adminError(other))
}

func TestTestCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/info/version", r.URL.Path)
		assert.Equal(t, "abc", r.Header.Get("X-Dataverse-key"))
		io.WriteString(w, `{"status":"OK","data":{"version":"6.2"}}`)
	}))
	defer server.Close()

	t.Setenv("DATAVERSE_BASE_URL", "")
	t.Setenv("DATAVERSE_API_KEY", "")
	t.Setenv("DATAVERSE_UNBLOCK_KEY", "")
	t.Setenv("DATAVERSE_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "dataverse.properties")
	content := "baseUrl=" + server.URL + "\napiKey=abc\nlogging.format=json\nlogging.level=error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rootCmd.SetArgs([]string{"test", "--config", path})
	require.NoError(t, rootCmd.Execute())

	require.NotNil(t, application)
	assert.Equal(t, server.URL, application.Client.BaseURL())
	assert.False(t, application.Client.HasUnblockKey())
}
