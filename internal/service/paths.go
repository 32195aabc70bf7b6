package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

func resolveEpisodeRoot() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.EpisodeRootFor(dirs), nil
}

func resolveEpisodePath(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("episode filename is empty")
	}

	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.EpisodePathFor(dirs, filename), nil
}

// episodeRelPath returns localPath relative to the output dir, or an error
// when it points outside the episode root.
func episodeRelPath(localPath string) (string, error) {
	episodeRoot, err := resolveEpisodeRoot()
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(episodeRoot, filepath.Clean(localPath))
	if err != nil {
		return "", err
	}
	if relPath == "." || relPath == "" {
		return "", fmt.Errorf("episode path %q is not a file path", localPath)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("episode path %q is outside episode root %q", localPath, episodeRoot)
	}
	return filepath.ToSlash(filepath.Join(appdirs.EpisodeRootName, relPath)), nil
}
