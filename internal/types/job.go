package types

import (
	"bytes"
	"encoding/json"
)

// LifecycleStatus is the four-state tag of the Job Record.
type LifecycleStatus string

const (
	LifecycleIdle       LifecycleStatus = "idle"
	LifecycleProcessing LifecycleStatus = "processing"
	LifecycleCompleted  LifecycleStatus = "completed"
	LifecycleFailed     LifecycleStatus = "failed"
)

func (s LifecycleStatus) String() string {
	switch s {
	case LifecycleIdle, LifecycleProcessing, LifecycleCompleted, LifecycleFailed:
		return string(s)
	default:
		return "unknown"
	}
}

// IsTerminal reports whether only a reset may leave the status.
func (s LifecycleStatus) IsTerminal() bool {
	return s == LifecycleCompleted || s == LifecycleFailed
}

// Result is populated only on the transition into completed.
type Result struct {
	Filename          string          `json:"filename"`
	AudioURL          string          `json:"audio_url"`
	Evaluation        json.RawMessage `json:"evaluation,omitempty"`
	ImprovementPrompt json.RawMessage `json:"improvement_prompt,omitempty"`
}

func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	return &Result{
		Filename:          r.Filename,
		AudioURL:          r.AudioURL,
		Evaluation:        cloneRaw(r.Evaluation),
		ImprovementPrompt: cloneRaw(r.ImprovementPrompt),
	}
}

func (r *Result) HasEvaluation() bool {
	return r != nil && isPresent(r.Evaluation)
}

func (r *Result) HasImprovementPrompt() bool {
	return r != nil && isPresent(r.ImprovementPrompt)
}

// JobRecord is the single job owned by a session. An empty ID means no job
// has been accepted by the remote service yet.
type JobRecord struct {
	ID       string
	Topic    string
	Status   LifecycleStatus
	Message  string
	Progress int
	Error    string
	Result   *Result
}

// Snapshot is the read-only view handed to display surfaces.
type Snapshot struct {
	Status     LifecycleStatus `json:"status"`
	JobID      string          `json:"job_id,omitempty"`
	Topic      string          `json:"topic"`
	Message    string          `json:"message"`
	Progress   int             `json:"progress"`
	Error      string          `json:"error"`
	Result     *Result         `json:"result,omitempty"`
	Generation uint64          `json:"generation"`
}

func (r JobRecord) Snapshot(generation uint64) Snapshot {
	return Snapshot{
		Status:     r.Status,
		JobID:      r.ID,
		Topic:      r.Topic,
		Message:    r.Message,
		Progress:   r.Progress,
		Error:      r.Error,
		Result:     r.Result.Clone(),
		Generation: generation,
	}
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
