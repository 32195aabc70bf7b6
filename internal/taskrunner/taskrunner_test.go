package taskrunner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
)

type fakeArchiver struct {
	mu      sync.Mutex
	done    []string
	block   chan struct{}
	started chan struct{}
	err     error
}

func (f *fakeArchiver) ArchiveEpisode(ctx context.Context, p dto.ArchiveEpisodePayload) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = append(f.done, p.Filename)
	return "/episodes/" + p.Filename, f.err
}

func (f *fakeArchiver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.done)
}

func TestRunnerProcessesTasks(t *testing.T) {
	archiver := &fakeArchiver{}
	r := New(archiver, Config{})
	t.Cleanup(r.Close)

	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{JobId: "a", Filename: "a.mp3"}))
	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{JobId: "b", Filename: "b.mp3"}))

	assert.Eventually(t, func() bool { return archiver.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestRunnerFailedTaskDoesNotStopWorker(t *testing.T) {
	archiver := &fakeArchiver{err: errors.New("download failed")}
	r := New(archiver, Config{Concurrency: 1})
	t.Cleanup(r.Close)

	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "a.mp3"}))
	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "b.mp3"}))

	assert.Eventually(t, func() bool { return archiver.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestRunnerQueueFull(t *testing.T) {
	archiver := &fakeArchiver{block: make(chan struct{}), started: make(chan struct{}, 1)}
	r := New(archiver, Config{QueueSize: 1, Concurrency: 1})
	t.Cleanup(func() {
		close(archiver.block)
		r.Close()
	})

	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "busy.mp3"}))
	<-archiver.started

	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "queued.mp3"}))
	assert.Equal(t, 1, r.Pending())
	assert.ErrorIs(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "overflow.mp3"}), ErrQueueFull)
}

func TestRunnerRejectsAfterClose(t *testing.T) {
	r := New(&fakeArchiver{}, DefaultConfig())
	r.Close()
	r.Close()

	assert.ErrorIs(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{Filename: "a.mp3"}), ErrRunnerStopped)
	assert.Error(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{}))
}

func TestRunnerRejectsDuplicateFilename(t *testing.T) {
	archiver := &fakeArchiver{block: make(chan struct{}), started: make(chan struct{}, 1)}
	r := New(archiver, Config{Concurrency: 1})
	t.Cleanup(r.Close)

	require.NoError(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{JobId: "a", Filename: "same.mp3"}))
	<-archiver.started
	assert.ErrorIs(t, r.EnqueueArchive(dto.ArchiveEpisodePayload{JobId: "b", Filename: "same.mp3"}), ErrAlreadyQueued)

	close(archiver.block)
	assert.Eventually(t, func() bool {
		return r.EnqueueArchive(dto.ArchiveEpisodePayload{JobId: "c", Filename: "same.mp3"}) == nil
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return archiver.count() == 2 }, time.Second, 5*time.Millisecond)
}
