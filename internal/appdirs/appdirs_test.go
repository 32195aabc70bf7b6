package appdirs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv map[string]string

func (e fakeEnv) get(key string) string { return e[key] }

func TestResolveLayouts(t *testing.T) {
	exe := filepath.Join("/", "opt", "radiohost", "radiohost")
	configRoot := filepath.Join("/", "home", "sam", ".config")
	cacheRoot := filepath.Join("/", "home", "sam", ".cache")
	home := filepath.Join("/", "srv", "radio")

	testCases := []struct {
		name string
		goos string
		env  fakeEnv
		want Paths
	}{
		{
			name: "explicit home wins over portable",
			env:  fakeEnv{HomeEnv: "  " + home + "  ", PortableEnv: "1"},
			want: Paths{
				Layout:     LayoutHome,
				ConfigFile: filepath.Join(home, "config.toml"),
				LogDir:     filepath.Join(home, "logs"),
				OutputDir:  filepath.Join(home, "output"),
				CacheDir:   filepath.Join(home, "cache"),
			},
		},
		{
			name: "portable roots next to the executable",
			env:  fakeEnv{PortableEnv: "true"},
			want: Paths{
				Layout:     LayoutPortable,
				ConfigFile: filepath.Join("/", "opt", "radiohost", "data", "config.toml"),
				LogDir:     filepath.Join("/", "opt", "radiohost", "data", "logs"),
				OutputDir:  filepath.Join("/", "opt", "radiohost", "data", "output"),
				CacheDir:   filepath.Join("/", "opt", "radiohost", "data", "cache"),
			},
		},
		{
			name: "user dirs split config from data",
			goos: "linux",
			env:  fakeEnv{},
			want: Paths{
				Layout:     LayoutUser,
				ConfigFile: filepath.Join(configRoot, appName, "config.toml"),
				LogDir:     filepath.Join(cacheRoot, appName, "logs"),
				OutputDir:  filepath.Join(cacheRoot, appName, "output"),
				CacheDir:   filepath.Join(cacheRoot, appName, "cache"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolve(resolveDeps{
				goos:          tc.goos,
				getenv:        tc.env.get,
				executable:    func() (string, error) { return exe, nil },
				userConfigDir: func() (string, error) { return configRoot, nil },
				userCacheDir:  func() (string, error) { return cacheRoot, nil },
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveFallsBackToWorkdir(t *testing.T) {
	got, err := resolve(resolveDeps{
		goos:          "darwin",
		getenv:        fakeEnv{}.get,
		userConfigDir: func() (string, error) { return "", errors.New("$HOME is not defined") },
	})
	require.NoError(t, err)
	assert.Equal(t, Paths{
		Layout:     LayoutWorkdir,
		ConfigFile: "config.toml",
		LogDir:     "logs",
		OutputDir:  "output",
		CacheDir:   "cache",
	}, got)
}

func TestResolveErrors(t *testing.T) {
	testCases := []struct {
		name       string
		deps       resolveDeps
		wantErrSub string
	}{
		{
			name: "portable mode returns executable lookup error",
			deps: resolveDeps{
				getenv:     fakeEnv{PortableEnv: "on"}.get,
				executable: func() (string, error) { return "", errors.New("no executable") },
			},
			wantErrSub: "no executable",
		},
		{
			name: "windows rejects empty config dir",
			deps: resolveDeps{
				goos:          "windows",
				getenv:        fakeEnv{}.get,
				userConfigDir: func() (string, error) { return "  ", nil },
			},
			wantErrSub: "user config dir is empty",
		},
		{
			name: "windows rejects empty cache dir",
			deps: resolveDeps{
				goos:          "windows",
				getenv:        fakeEnv{}.get,
				userConfigDir: func() (string, error) { return "C:\\cfg", nil },
				userCacheDir:  func() (string, error) { return "", nil },
			},
			wantErrSub: "user cache dir is empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolve(tc.deps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErrSub)
		})
	}
}

func TestIsPortableEnabled(t *testing.T) {
	for value, want := range map[string]bool{
		"":         false,
		"0":        false,
		"false":    false,
		"1":        true,
		"TRUE":     true,
		"  yes  ":  true,
		"on":       true,
		"portable": false,
	} {
		assert.Equal(t, want, isPortableEnabled(value), "value %q", value)
	}
}
