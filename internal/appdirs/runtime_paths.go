package appdirs

import (
	"path/filepath"
	"strings"
)

const (
	EpisodeRootName = "episodes"
	dbFileName      = "radiohost.db"
)

func EpisodeRootFor(paths Paths) string {
	return filepath.Join(normalizeOutputDir(paths.OutputDir), EpisodeRootName)
}

// EpisodePathFor returns where an archived episode is stored. Only the base
// name of filename is used so a remote filename cannot escape the root.
func EpisodePathFor(paths Paths, filename string) string {
	return filepath.Join(EpisodeRootFor(paths), filepath.Base(filepath.Clean("/"+filename)))
}

func DBPathFor(paths Paths) string {
	return filepath.Join(normalizeCacheDir(paths.CacheDir), dbFileName)
}

func ResolveEpisodeRoot() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return EpisodeRootFor(paths), nil
}

func ResolveDBPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return DBPathFor(paths), nil
}

func normalizeOutputDir(outputDir string) string {
	cleaned := strings.TrimSpace(outputDir)
	if cleaned == "" {
		return "."
	}
	return filepath.Clean(cleaned)
}

func normalizeCacheDir(cacheDir string) string {
	cleaned := strings.TrimSpace(cacheDir)
	if cleaned == "" {
		return "cache"
	}
	return filepath.Clean(cleaned)
}
