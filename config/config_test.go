package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateConfigWritesDefaults(t *testing.T) {
	configPath := useConfigPathForTest(t)

	_, err := os.Stat(configPath)
	require.True(t, os.IsNotExist(err), "config file should not exist yet")

	created, err := LoadOrCreateConfig()
	require.NoError(t, err)
	assert.True(t, created)

	var onDisk Config
	_, err = toml.DecodeFile(configPath, &onDisk)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), onDisk)

	assert.Equal(t, "info", onDisk.App.LogLevel)
	assert.Equal(t, "http://127.0.0.1:8000", onDisk.Remote.BaseUrl)
	assert.Equal(t, 30, onDisk.Remote.TimeoutSec)
	assert.Empty(t, onDisk.Remote.Proxy)
	assert.Equal(t, "SyntheticRadioHost/1.0", onDisk.Remote.UserAgent)
	assert.False(t, onDisk.Archive.Enabled)
	assert.False(t, onDisk.Queue.Enabled)
	assert.NoError(t, CheckConfig())
}

func TestLoadOrCreateConfigFillsMissingSections(t *testing.T) {
	configPath := useConfigPathForTest(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("[remote]\nbase_url = \"https://radio.example.com\"\n"), 0o644))

	created, err := LoadOrCreateConfig()
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, "https://radio.example.com", Conf.Remote.BaseUrl)
	assert.Equal(t, 30*time.Second, Conf.RemoteTimeout())
	assert.Equal(t, "info", Conf.App.LogLevel)
	assert.Equal(t, "127.0.0.1:8888", Conf.ServerAddr())
}

func TestLoadOrCreateConfigRejectsBrokenFile(t *testing.T) {
	configPath := useConfigPathForTest(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("[remote\n"), 0o644))

	_, err := LoadOrCreateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
	assert.False(t, LoadConfig())
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "deep", "nest", "config.toml")
	old := resolveConfigPath
	oldConf := Conf
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() {
		resolveConfigPath = old
		Conf = oldConf
	})

	Conf = defaultConfig()
	Conf.App.LogLevel = "debug"
	Conf.Remote.Proxy = "http://proxy.local:3128"
	require.NoError(t, SaveConfig())

	var got Config
	_, err := toml.DecodeFile(configPath, &got)
	require.NoError(t, err)
	assert.Equal(t, "debug", got.App.LogLevel)
	assert.Equal(t, "http://proxy.local:3128", got.Remote.Proxy)
}

func TestConfigHelpers(t *testing.T) {
	testCases := []struct {
		name        string
		remote      Remote
		server      Server
		wantTimeout time.Duration
		wantAddr    string
	}{
		{
			name:        "configured values",
			remote:      Remote{TimeoutSec: 5},
			server:      Server{Host: "0.0.0.0", Port: 9000},
			wantTimeout: 5 * time.Second,
			wantAddr:    "0.0.0.0:9000",
		},
		{
			name:        "non positive timeout falls back",
			remote:      Remote{TimeoutSec: -1},
			server:      Server{Host: "localhost", Port: 8888},
			wantTimeout: 30 * time.Second,
			wantAddr:    "localhost:8888",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Config{Remote: tc.remote, Server: tc.server}
			assert.Equal(t, tc.wantTimeout, c.RemoteTimeout())
			assert.Equal(t, tc.wantAddr, c.ServerAddr())
		})
	}
}
