package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

// EpisodeArchiver does the actual archive work for a queued payload.
type EpisodeArchiver interface {
	ArchiveEpisode(ctx context.Context, payload dto.ArchiveEpisodePayload) (string, error)
}

// TaskHandlers provides handlers for different task types
type TaskHandlers struct {
	archiver EpisodeArchiver
}

func NewTaskHandlers(archiver EpisodeArchiver) *TaskHandlers {
	return &TaskHandlers{archiver: archiver}
}

// HandleArchiveTask downloads one episode. A malformed payload is not retried.
func (h *TaskHandlers) HandleArchiveTask(ctx context.Context, t *asynq.Task) error {
	var payload dto.ArchiveEpisodePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.GetLogger().Info("[Queue] Processing archive task",
		zap.String("job_id", payload.JobId),
		zap.String("filename", payload.Filename))

	path, err := h.archiver.ArchiveEpisode(ctx, payload)
	if err != nil {
		return err
	}

	log.GetLogger().Info("[Queue] Archive task completed",
		zap.String("job_id", payload.JobId),
		zap.String("path", path))
	return nil
}

// RegisterHandlers registers all task handlers with the Asynq server mux
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeArchiveEpisode, h.HandleArchiveTask)
}

// StartWorker starts the Asynq worker in the background; Close stops it.
func StartWorker(q *Queue, archiver EpisodeArchiver) error {
	mux := asynq.NewServeMux()
	NewTaskHandlers(archiver).RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Start(mux)
}
