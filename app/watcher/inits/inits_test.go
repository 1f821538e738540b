package inits

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Setenv("SERVER_ENDPOINT", "http://localhost:8080")
	t.Setenv("BOARD_ID", "3")
	t.Setenv("MODE", "prod")

	cfg, err := Config()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd)
	assert.EqualValues(t, 3, cfg.BoardID)
	assert.Equal(t, 5*time.Second, cfg.ReconnectInterval)
	assert.Zero(t, cfg.RefreshInterval)
}

func TestConfigRejects(t *testing.T) {
	for name, envs := range map[string]map[string]string{
		"missing endpoint": {"SERVER_ENDPOINT": "", "BOARD_ID": "1"},
		"zero board":       {"SERVER_ENDPOINT": "http://x", "BOARD_ID": "0"},
		"bad board":        {"SERVER_ENDPOINT": "http://x", "BOARD_ID": "abc"},
		"zero reconnect":   {"SERVER_ENDPOINT": "http://x", "BOARD_ID": "1", "RECONNECT_INTERVAL": "0s"},
		"negative refresh": {"SERVER_ENDPOINT": "http://x", "BOARD_ID": "1", "REFRESH_INTERVAL": "-1s"},
	} {
		t.Run(name, func(t *testing.T) {
			for k, v := range envs {
				t.Setenv(k, v)
			}
			_, err := Config()
			assert.Error(t, err)
		})
	}
}
