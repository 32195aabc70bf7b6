package appdirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	HomeEnv     = "RADIOHOST_HOME"
	PortableEnv = "RADIOHOST_PORTABLE"

	appName        = "radiohost"
	configFileName = "config.toml"
)

// Layout names where a Paths value was rooted.
type Layout string

const (
	LayoutHome     Layout = "home"
	LayoutPortable Layout = "portable"
	LayoutUser     Layout = "user"
	LayoutWorkdir  Layout = "workdir"
)

// Paths is the set of locations the client reads from and writes to.
type Paths struct {
	Layout     Layout
	ConfigFile string
	LogDir     string
	OutputDir  string
	CacheDir   string
}

type resolveDeps struct {
	goos          string
	getenv        func(string) string
	executable    func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}

// Resolve picks the directory layout. In order: an explicit RADIOHOST_HOME,
// portable mode next to the executable, the per-user config and cache dirs,
// and finally the working directory.
func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		goos:          runtime.GOOS,
		getenv:        os.Getenv,
		executable:    os.Executable,
		userConfigDir: os.UserConfigDir,
		userCacheDir:  os.UserCacheDir,
	})
}

func resolve(rawDeps resolveDeps) (Paths, error) {
	deps := withDefaults(rawDeps)

	if home := strings.TrimSpace(deps.getenv(HomeEnv)); home != "" {
		return rootedAt(LayoutHome, filepath.Clean(home)), nil
	}

	if isPortableEnabled(deps.getenv(PortableEnv)) {
		exe, err := deps.executable()
		if err != nil {
			return Paths{}, err
		}
		return rootedAt(LayoutPortable, filepath.Join(filepath.Dir(exe), "data")), nil
	}

	configRoot, cacheRoot, err := userRoots(deps)
	if err == nil {
		paths := rootedAt(LayoutUser, filepath.Join(cacheRoot, appName))
		paths.ConfigFile = filepath.Join(configRoot, appName, configFileName)
		return paths, nil
	}
	// Windows has no usable working-directory layout.
	if deps.goos == "windows" {
		return Paths{}, err
	}
	return Paths{
		Layout:     LayoutWorkdir,
		ConfigFile: configFileName,
		LogDir:     "logs",
		OutputDir:  "output",
		CacheDir:   "cache",
	}, nil
}

func withDefaults(deps resolveDeps) resolveDeps {
	if deps.goos == "" {
		deps.goos = runtime.GOOS
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}
	if deps.userConfigDir == nil {
		deps.userConfigDir = os.UserConfigDir
	}
	if deps.userCacheDir == nil {
		deps.userCacheDir = os.UserCacheDir
	}
	return deps
}

func userRoots(deps resolveDeps) (configRoot, cacheRoot string, err error) {
	configRoot, err = deps.userConfigDir()
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(configRoot) == "" {
		return "", "", errors.New("user config dir is empty")
	}

	cacheRoot, err = deps.userCacheDir()
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(cacheRoot) == "" {
		return "", "", errors.New("user cache dir is empty")
	}
	return configRoot, cacheRoot, nil
}

func rootedAt(layout Layout, root string) Paths {
	return Paths{
		Layout:     layout,
		ConfigFile: filepath.Join(root, configFileName),
		LogDir:     filepath.Join(root, "logs"),
		OutputDir:  filepath.Join(root, "output"),
		CacheDir:   filepath.Join(root, "cache"),
	}
}

func isPortableEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
