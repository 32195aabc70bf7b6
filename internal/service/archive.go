package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/storage"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

// ArchiveEpisode downloads a finished episode into the episode directory and
// notes the result on its history row. The live session is never touched.
func (s *Service) ArchiveEpisode(ctx context.Context, payload dto.ArchiveEpisodePayload) (string, error) {
	if s.Downloader == nil {
		return "", apperrors.ErrArchiveDisabled
	}

	dest, err := resolveEpisodePath(payload.Filename)
	if err != nil {
		return "", apperrors.WrapWithDetail(apperrors.CodeInvalidParams, "Invalid episode filename", payload.Filename, err)
	}

	size, err := s.Downloader.Download(ctx, payload.Filename, dest)
	if err != nil {
		s.noteArchive(payload.HistoryId, "", err.Error())
		return "", apperrors.Wrap(apperrors.CodeArchiveFailed, "Episode archive failed", err)
	}

	s.noteArchive(payload.HistoryId, dest, "")
	log.GetLogger().Info("[Archive] episode stored",
		zap.String("job_id", payload.JobId),
		zap.String("path", dest),
		zap.Int64("bytes", size))
	return dest, nil
}

func (s *Service) noteArchive(historyId, localPath, archiveErr string) {
	if historyId == "" {
		return
	}
	if err := storage.UpdateArchive(historyId, localPath, archiveErr); err != nil {
		log.GetLogger().Warn("[Archive] history update failed", zap.String("history_id", historyId), zap.Error(err))
	}
}
