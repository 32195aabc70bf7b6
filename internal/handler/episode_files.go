package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/appdirs"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/response"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

var appDirsResolver = appdirs.Resolve

// DownloadEpisode serves an archived episode from the local episode root.
func (h Handler) DownloadEpisode(c *gin.Context) {
	requested := c.Param("filepath")
	if strings.Trim(requested, "/ ") == "" {
		response.ErrorResponse(c, apperrors.ErrInvalidParams)
		return
	}

	localPath, ok := resolveEpisodeFile(requested)
	if !ok {
		c.JSON(http.StatusNotFound, response.FromError(apperrors.ErrFileNotFound))
		return
	}
	if info, err := os.Stat(localPath); err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, response.FromError(apperrors.ErrFileNotFound))
		return
	}
	c.FileAttachment(localPath, filepath.Base(localPath))
}

func resolveEpisodeFile(requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	requested = strings.TrimPrefix(requested, "/")
	if hasParentTraversal(requested) {
		return "", false
	}

	dirs, err := appDirsResolver()
	if err != nil {
		return "", false
	}
	root := appdirs.EpisodeRootFor(dirs)

	candidate := filepath.Clean(filepath.Join(root, filepath.FromSlash(requested)))
	if candidate == root || !isPathWithinRoot(root, candidate) {
		return "", false
	}
	return candidate, true
}

func isPathWithinRoot(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func hasParentTraversal(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
