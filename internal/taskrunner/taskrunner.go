package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

const (
	defaultQueueSize   = 32
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
	ErrAlreadyQueued = errors.New("episode is already being archived")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// EpisodeArchiver does the actual archive work for a queued payload.
type EpisodeArchiver interface {
	ArchiveEpisode(ctx context.Context, payload dto.ArchiveEpisodePayload) (string, error)
}

// Runner executes queued archive tasks with in-memory workers.
type Runner struct {
	archiver EpisodeArchiver
	config   Config

	queue  chan dto.ArchiveEpisodePayload
	ctx    context.Context
	cancel context.CancelFunc

	// filenames queued or being archived
	mu       sync.Mutex
	inflight map[string]struct{}

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(archiver EpisodeArchiver, cfg Config) *Runner {
	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		archiver: archiver,
		config:   cfg,
		queue:    make(chan dto.ArchiveEpisodePayload, cfg.QueueSize),
		inflight: make(map[string]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// EnqueueArchive queues an episode archive without blocking. A filename that
// is already queued or being archived is rejected with ErrAlreadyQueued.
func (r *Runner) EnqueueArchive(payload dto.ArchiveEpisodePayload) error {
	if payload.Filename == "" {
		return errors.New("archive task filename is required")
	}
	if r.closed.Load() {
		return ErrRunnerStopped
	}
	if !r.claim(payload.Filename) {
		return ErrAlreadyQueued
	}

	select {
	case <-r.ctx.Done():
		r.release(payload.Filename)
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] task submitted",
			zap.String("job_id", payload.JobId),
			zap.String("filename", payload.Filename))
		return nil
	default:
		r.release(payload.Filename)
		return ErrQueueFull
	}
}

func (r *Runner) claim(filename string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inflight[filename]; ok {
		return false
	}
	r.inflight[filename] = struct{}{}
	return true
}

func (r *Runner) release(filename string) {
	r.mu.Lock()
	delete(r.inflight, filename)
	r.mu.Unlock()
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case payload := <-r.queue:
			r.process(workerID, payload)
		}
	}
}

func (r *Runner) process(workerID int, payload dto.ArchiveEpisodePayload) {
	defer r.release(payload.Filename)

	path, err := r.archiver.ArchiveEpisode(r.ctx, payload)
	if err != nil {
		log.GetLogger().Error("[TaskRunner] task failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", payload.JobId),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] task completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", payload.JobId),
		zap.String("path", path))
}

// Close stops workers and rejects new tasks. Queued tasks that no worker
// picked up are dropped.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
