package types

import "time"

// JobHistory is the persisted trace of one submission. The live Job Record
// is never read back from it.
type JobHistory struct {
	Id         uint64          `gorm:"primaryKey;autoIncrement" json:"-"`
	HistoryId  string          `gorm:"uniqueIndex;size:36" json:"history_id"`
	JobId      string          `gorm:"index" json:"job_id"`
	Topic      string          `json:"topic"`
	Status     LifecycleStatus `gorm:"index;size:16" json:"status"`
	FailReason string          `json:"fail_reason,omitempty"`
	Filename   string          `json:"filename,omitempty"`
	AudioUrl   string          `json:"audio_url,omitempty"`
	LocalPath  string          `json:"local_path,omitempty"`
	ArchiveErr string          `json:"archive_err,omitempty"`
	CreateTime time.Time       `gorm:"autoCreateTime" json:"create_time"`
	UpdateTime time.Time       `gorm:"autoUpdateTime" json:"update_time"`
	FinishTime *time.Time      `json:"finish_time,omitempty"`
}
