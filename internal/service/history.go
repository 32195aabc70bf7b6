package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/session"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/storage"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// RecordSubmitted stores a history row for a job the service accepted.
func (s *Service) RecordSubmitted(o session.Outcome) (string, error) {
	job := &types.JobHistory{
		HistoryId: uuid.NewString(),
		JobId:     o.JobID,
		Topic:     o.Topic,
		Status:    types.LifecycleProcessing,
	}
	if err := storage.SaveJob(job); err != nil {
		return "", apperrors.Wrap(apperrors.CodeDBError, "Failed to save job history", err)
	}
	return job.HistoryId, nil
}

// RecordTerminal writes the final status onto the job's history row,
// creating the row if the submission was never recorded.
func (s *Service) RecordTerminal(o session.Outcome) (*types.JobHistory, error) {
	job, err := storage.GetJobByRemoteId(o.JobID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to load job history", err)
		}
		job = &types.JobHistory{HistoryId: uuid.NewString(), JobId: o.JobID, Topic: o.Topic}
	}

	finished := o.At
	if finished.IsZero() {
		finished = time.Now()
	}
	job.Status = o.Status
	job.FailReason = o.Error
	job.FinishTime = &finished
	if o.Result != nil {
		job.Filename = o.Result.Filename
		job.AudioUrl = o.Result.AudioURL
	}

	if err = storage.SaveJob(job); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to save job history", err)
	}
	return job, nil
}

// OnSubmitted is the session hook recording new jobs.
func (s *Service) OnSubmitted(o session.Outcome) {
	if _, err := s.RecordSubmitted(o); err != nil {
		log.GetLogger().Error("[History] record submission failed", zap.String("job_id", o.JobID), zap.Error(err))
	}
}

// OnTerminal is the session hook recording outcomes and queueing the
// archive of completed episodes.
func (s *Service) OnTerminal(o session.Outcome) {
	job, err := s.RecordTerminal(o)
	if err != nil {
		log.GetLogger().Error("[History] record outcome failed", zap.String("job_id", o.JobID), zap.Error(err))
		return
	}
	if o.Status != types.LifecycleCompleted || s.Archiver == nil {
		return
	}

	payload := dto.ArchiveEpisodePayload{HistoryId: job.HistoryId, JobId: job.JobId, Filename: job.Filename}
	if err = s.Archiver.EnqueueArchive(payload); err != nil {
		log.GetLogger().Error("[History] queue archive failed", zap.String("job_id", o.JobID), zap.Error(err))
		_ = storage.UpdateArchive(job.HistoryId, "", err.Error())
	}
}

// History lists the newest jobs first.
func (s *Service) History(req dto.GetHistoryReq) ([]dto.HistoryItem, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	jobs, err := storage.GetJobHistory(limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to load job history", err)
	}

	return lo.Map(jobs, func(job types.JobHistory, _ int) dto.HistoryItem {
		item := dto.HistoryItem{
			HistoryId:  job.HistoryId,
			JobId:      job.JobId,
			Topic:      job.Topic,
			Status:     job.Status.String(),
			FailReason: job.FailReason,
			AudioUrl:   job.AudioUrl,
			CreatedAt:  job.CreateTime.Unix(),
		}
		if job.LocalPath != "" {
			if rel, err := episodeRelPath(job.LocalPath); err == nil {
				item.LocalPath = rel
			}
		}
		return item
	}), nil
}

func (s *Service) DeleteHistory(historyId string) error {
	deleted, err := storage.DeleteJob(historyId)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDBError, "Failed to delete job history", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}
