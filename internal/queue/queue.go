// Package queue runs episode archiving through Asynq when a Redis broker is
// configured, so archives survive a restart of the client.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

const (
	TypeArchiveEpisode = "episode:archive"

	archiveQueue = "episodes"
)

// ErrAlreadyQueued is returned when an archive for the same filename is
// still pending, scheduled or running.
var ErrAlreadyQueued = errors.New("episode is already being archived")

// QueueConfig holds Redis configuration for Asynq
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// DefaultConfig returns default queue configuration
func DefaultConfig() QueueConfig {
	return QueueConfig{
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		Concurrency: 2,
	}
}

// ConfigFrom maps the [queue] config section.
func ConfigFrom(conf config.Queue) QueueConfig {
	cfg := QueueConfig{
		RedisAddr:     conf.RedisAddr,
		RedisPassword: conf.RedisPassword,
		RedisDB:       conf.RedisDB,
		Concurrency:   conf.Concurrency,
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = DefaultConfig().RedisAddr
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	return cfg
}

// Queue manages task enqueueing and processing
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

// NewQueue creates a new Queue instance
func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				archiveQueue: 1,
			},
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// retryDelay backs off exponentially: 10s, 20s, 40s, ...
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	return time.Duration(10<<uint(n)) * time.Second
}

// NewArchiveTask builds the asynq task for one episode.
func NewArchiveTask(payload dto.ArchiveEpisodePayload) (*asynq.Task, error) {
	if payload.Filename == "" {
		return nil, fmt.Errorf("archive task filename is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypeArchiveEpisode, data,
		asynq.TaskID(archiveTaskID(payload.Filename)),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Queue(archiveQueue),
	), nil
}

func archiveTaskID(filename string) string {
	return TypeArchiveEpisode + ":" + filename
}

// EnqueueArchive adds an archive task to the queue
func (q *Queue) EnqueueArchive(payload dto.ArchiveEpisodePayload) error {
	task, err := NewArchiveTask(payload)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return ErrAlreadyQueued
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Task enqueued",
		zap.String("job_id", payload.JobId),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return nil
}

// Close gracefully shuts down the queue
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}
