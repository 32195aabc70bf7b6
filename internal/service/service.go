package service

import (
	"context"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
)

// Downloader fetches a generated episode from the remote service.
type Downloader interface {
	Download(ctx context.Context, filename, dest string) (int64, error)
}

// Archiver queues archive work; the in-process task runner and the asynq
// queue both implement it.
type Archiver interface {
	EnqueueArchive(payload dto.ArchiveEpisodePayload) error
}

// Service keeps the job history and archives finished episodes. It only
// observes the session through its hooks.
type Service struct {
	Downloader Downloader
	Archiver   Archiver
}

func NewService(downloader Downloader) *Service {
	return &Service{Downloader: downloader}
}

// SetArchiver enables archiving of completed episodes. A nil archiver
// disables it.
func (s *Service) SetArchiver(a Archiver) {
	s.Archiver = a
}
