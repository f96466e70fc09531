package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osukit/osukit/internal/config"
)

func TestAPIHost(t *testing.T) {
	require.Equal(t, "osu.ppy.sh", apiHost("https://osu.ppy.sh/api/v2"))
	require.Equal(t, "localhost", apiHost("http://localhost:8080/api/v2"))
	require.Equal(t, "osu.ppy.sh", apiHost(""))
	require.Equal(t, "osu.ppy.sh", apiHost("://not-a-url"))
}

func TestRenderConfigRedactsSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.BaseURL = "https://osu.ppy.sh/api/v2"
	cfg.API.ClientID = 1234
	cfg.API.ClientSecret = "hunter2"
	cfg.API.Timeout = 30 * time.Second
	cfg.Store.AuthToken = "turso-token"

	rendered, err := renderConfig(cfg)
	require.NoError(t, err)

	require.NotContains(t, rendered, "hunter2")
	require.NotContains(t, rendered, "turso-token")
	require.Contains(t, rendered, "[redacted]")
	require.Contains(t, rendered, "client_id: 1234")
	require.Contains(t, rendered, "timeout: 30s")
}

func TestRenderConfigKeepsEmptySecretsEmpty(t *testing.T) {
	rendered, err := renderConfig(&config.Config{})
	require.NoError(t, err)
	require.NotContains(t, rendered, "[redacted]")
}
