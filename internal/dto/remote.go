package dto

import "encoding/json"

// Remote job statuses as reported by GET /api/status/{job_id}. Anything other
// than completed or failed is treated as still in progress.
const (
	RemoteStatusPending    = "pending"
	RemoteStatusProcessing = "processing"
	RemoteStatusCompleted  = "completed"
	RemoteStatusFailed     = "failed"
)

type GenerateReq struct {
	Topic string `json:"topic"`
}

type GenerateResData struct {
	JobId  string `json:"job_id"`
	Status string `json:"status,omitempty"`
}

// JobStatusResData is the body of GET /api/status/{job_id}. Progress is a
// pointer because an absent progress must not reset the displayed value.
type JobStatusResData struct {
	Status            string          `json:"status"`
	Topic             string          `json:"topic,omitempty"`
	Message           string          `json:"message,omitempty"`
	Progress          *float64        `json:"progress,omitempty"`
	Filename          string          `json:"filename,omitempty"`
	Evaluation        json.RawMessage `json:"evaluation,omitempty"`
	ImprovementPrompt json.RawMessage `json:"improvement_prompt,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// ErrorResData is the FastAPI style error body ({"detail": "..."}).
type ErrorResData struct {
	Detail string `json:"detail"`
}
