package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
)

type stubArchiver struct {
	got dto.ArchiveEpisodePayload
	err error
}

func (s *stubArchiver) ArchiveEpisode(_ context.Context, p dto.ArchiveEpisodePayload) (string, error) {
	s.got = p
	return "/out/episodes/" + p.Filename, s.err
}

func TestNewArchiveTask(t *testing.T) {
	payload := dto.ArchiveEpisodePayload{HistoryId: "h-1", JobId: "abc123", Filename: "abc123.mp3"}
	task, err := NewArchiveTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TypeArchiveEpisode, task.Type())
	assert.Equal(t, "episode:archive:abc123.mp3", archiveTaskID(payload.Filename))

	var decoded dto.ArchiveEpisodePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)

	_, err = NewArchiveTask(dto.ArchiveEpisodePayload{JobId: "x"})
	assert.Error(t, err)
}

func TestHandleArchiveTask(t *testing.T) {
	archiver := &stubArchiver{}
	h := NewTaskHandlers(archiver)

	task, err := NewArchiveTask(dto.ArchiveEpisodePayload{JobId: "abc123", Filename: "abc123.mp3"})
	require.NoError(t, err)
	require.NoError(t, h.HandleArchiveTask(context.Background(), task))
	assert.Equal(t, "abc123.mp3", archiver.got.Filename)

	archiver.err = errors.New("download failed")
	assert.EqualError(t, h.HandleArchiveTask(context.Background(), task), "download failed")
}

func TestHandleArchiveTaskSkipsRetryOnBadPayload(t *testing.T) {
	h := NewTaskHandlers(&stubArchiver{})

	err := h.HandleArchiveTask(context.Background(), asynq.NewTask(TypeArchiveEpisode, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.Queue{RedisDB: 4})
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 10*time.Second, retryDelay(0, nil, nil))
	assert.Equal(t, 40*time.Second, retryDelay(2, nil, nil))
}
