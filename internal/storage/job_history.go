package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

const interruptedReason = "Interrupted: the client stopped before the job finished"

var errNotInitialized = errors.New("database not initialized")

// SaveJob creates or updates the row identified by HistoryId.
func SaveJob(job *types.JobHistory) error {
	if DB == nil {
		return errNotInitialized
	}

	var existing types.JobHistory
	result := DB.Where("history_id = ?", job.HistoryId).First(&existing)
	if result.Error == nil {
		job.Id = existing.Id
		job.CreateTime = existing.CreateTime
		return DB.Save(job).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(job).Error
	}
	return result.Error
}

func GetJob(historyId string) (*types.JobHistory, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	var job types.JobHistory
	if err := DB.Where("history_id = ?", historyId).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobByRemoteId returns the newest row for a job id of the remote service.
func GetJobByRemoteId(jobId string) (*types.JobHistory, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	var job types.JobHistory
	if err := DB.Where("job_id = ?", jobId).Order("id desc").First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func GetJobHistory(limit int) ([]types.JobHistory, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	var jobs []types.JobHistory
	if err := DB.Order("create_time desc, id desc").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteJob removes a row and reports whether it existed.
func DeleteJob(historyId string) (bool, error) {
	if DB == nil {
		return false, errNotInitialized
	}
	result := DB.Where("history_id = ?", historyId).Delete(&types.JobHistory{})
	return result.RowsAffected > 0, result.Error
}

// UpdateArchive records where an episode was archived, or why it was not.
func UpdateArchive(historyId, localPath, archiveErr string) error {
	if DB == nil {
		return errNotInitialized
	}
	result := DB.Model(&types.JobHistory{}).
		Where("history_id = ?", historyId).
		Updates(map[string]interface{}{
			"local_path":  localPath,
			"archive_err": archiveErr,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkStaleJobs marks every row still processing as failed. It is called on
// startup; a new process never resumes polling an old job.
func MarkStaleJobs() (int64, error) {
	if DB == nil {
		return 0, errNotInitialized
	}
	now := time.Now()
	result := DB.Model(&types.JobHistory{}).
		Where("status = ?", types.LifecycleProcessing).
		Updates(map[string]interface{}{
			"status":      types.LifecycleFailed,
			"fail_reason": interruptedReason,
			"finish_time": &now,
		})
	return result.RowsAffected, result.Error
}
