package dto

import (
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/render"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

type SubmitTopicReq struct {
	Topic string `json:"topic" binding:"required"`
}

// SessionResData is what display widgets receive: the snapshot and the
// widget the render gate picked for it.
type SessionResData struct {
	Snapshot types.Snapshot `json:"snapshot"`
	View     render.View    `json:"view"`
}

type GetHistoryReq struct {
	Limit int `form:"limit"`
}

type HistoryItem struct {
	HistoryId  string `json:"history_id"`
	JobId      string `json:"job_id"`
	Topic      string `json:"topic"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
	AudioUrl   string `json:"audio_url,omitempty"`
	LocalPath  string `json:"local_path,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}
