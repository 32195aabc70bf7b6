package types

import "encoding/json"

type CategoryScore struct {
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Evaluation mirrors the scorecard the service attaches to a finished episode.
type Evaluation struct {
	OverallScore float64                  `json:"overall_score"`
	Categories   map[string]CategoryScore `json:"categories"`
	Strengths    []string                 `json:"strengths"`
	Improvements []string                 `json:"improvements"`
	Feedback     string                   `json:"feedback"`
	Error        string                   `json:"error,omitempty"`
}

type ImprovementPrompt struct {
	Prompt       string  `json:"prompt"`
	ModelUsed    string  `json:"model_used,omitempty"`
	BasedOnScore float64 `json:"based_on_score,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// DecodeEvaluation returns nil when the result carries no evaluation.
func (r *Result) DecodeEvaluation() (*Evaluation, error) {
	if !r.HasEvaluation() {
		return nil, nil
	}
	var eval Evaluation
	if err := json.Unmarshal(r.Evaluation, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *Result) DecodeImprovementPrompt() (*ImprovementPrompt, error) {
	if !r.HasImprovementPrompt() {
		return nil, nil
	}
	var prompt ImprovementPrompt
	if err := json.Unmarshal(r.ImprovementPrompt, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}
