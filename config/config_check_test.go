package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfigPathForTest(t *testing.T) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config", "config.toml")
	old := resolveConfigPath
	oldConf := Conf
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() {
		resolveConfigPath = old
		Conf = oldConf
	})
	return configPath
}

func TestLoadOrCreateConfigLoadsExisting(t *testing.T) {
	useConfigPathForTest(t)

	Conf = defaultConfig()
	Conf.Server.Host = "0.0.0.0"
	Conf.Remote.BaseUrl = "https://radio.example.com"
	Conf.Remote.TimeoutSec = 5
	require.NoError(t, SaveConfig())

	Conf = Config{}
	created, err := LoadOrCreateConfig()
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, "0.0.0.0", Conf.Server.Host)
	assert.Equal(t, "https://radio.example.com", Conf.Remote.BaseUrl)
	assert.Equal(t, 5*time.Second, Conf.RemoteTimeout())
}

func TestCheckConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "rejects non http base url",
			mutate:  func(c *Config) { c.Remote.BaseUrl = "ftp://example.com" },
			wantErr: "http or https",
		},
		{
			name:    "rejects base url without host",
			mutate:  func(c *Config) { c.Remote.BaseUrl = "http://" },
			wantErr: "no host",
		},
		{
			name:    "rejects port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name: "requires redis addr when queue enabled",
			mutate: func(c *Config) {
				c.Queue.Enabled = true
				c.Queue.RedisAddr = " "
			},
			wantErr: "redis_addr",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			useConfigPathForTest(t)
			Conf = defaultConfig()
			tc.mutate(&Conf)

			err := CheckConfig()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
