// Package render decides which display widget shows a session snapshot.
// It only reads snapshots; user intents go back through the session.
package render

import (
	"strings"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

type Widget string

const (
	WidgetTopicInput  Widget = "topic_input"
	WidgetErrorBanner Widget = "error_banner"
	WidgetProgress    Widget = "progress"
	WidgetPlayer      Widget = "player"
	WidgetErrorCard   Widget = "error_card"
)

const (
	HeadlineNotFound = "Topic Not Found"
	HeadlineBroken   = "Something broke"
)

// View is the display decision for one snapshot. Extras lists the cards
// rendered under the player; CanReset is set when the widget offers a reset.
type View struct {
	Widget   Widget   `json:"widget"`
	Headline string   `json:"headline,omitempty"`
	Text     string   `json:"text,omitempty"`
	Progress int      `json:"progress,omitempty"`
	AudioURL string   `json:"audio_url,omitempty"`
	Extras   []string `json:"extras,omitempty"`
	CanReset bool     `json:"can_reset"`
}

func Gate(s types.Snapshot) View {
	switch s.Status {
	case types.LifecycleProcessing:
		// A failure carried into a new submission stays on screen until the
		// job completes or fails again.
		if s.Error != "" {
			return View{Widget: WidgetErrorBanner, Headline: Headline(s.Error), Text: s.Error, Progress: s.Progress, CanReset: true}
		}
		return View{Widget: WidgetProgress, Text: s.Message, Progress: s.Progress}
	case types.LifecycleCompleted:
		if s.Result == nil || s.Result.AudioURL == "" {
			return View{Widget: WidgetTopicInput}
		}
		v := View{Widget: WidgetPlayer, AudioURL: s.Result.AudioURL, Text: s.Topic, CanReset: true}
		if s.Result.HasEvaluation() {
			v.Extras = append(v.Extras, "scorecard")
		}
		if s.Result.HasImprovementPrompt() {
			v.Extras = append(v.Extras, "improvement_prompt")
		}
		return v
	case types.LifecycleFailed:
		return View{Widget: WidgetErrorCard, Headline: Headline(s.Error), Text: s.Error, CanReset: true}
	default:
		if s.Error != "" {
			return View{Widget: WidgetErrorBanner, Text: s.Error, CanReset: true}
		}
		return View{Widget: WidgetTopicInput}
	}
}

// Headline classifies a failure message for the error card title.
func Headline(errText string) string {
	lower := strings.ToLower(errText)
	if strings.Contains(lower, "not found") || strings.Contains(lower, "not available") {
		return HeadlineNotFound
	}
	return HeadlineBroken
}
