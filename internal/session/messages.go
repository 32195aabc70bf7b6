package session

import (
	"errors"
	"fmt"

	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

// User-visible texts written into the job record.
const (
	MsgSending           = "Sending request..."
	MsgStatusCheckFailed = "Failed to check job status. Please refresh and try again."
	MsgGenerationFailed  = "Generation failed. Please try again."
	MsgNoOutput          = "Generation returned no output."

	connectFailedFormat = "Failed to connect to server: %s. Is backend running?"
)

// connectFailed renders the transient Idle error left by a failed submission.
func connectFailed(err error) string {
	return fmt.Sprintf(connectFailedFormat, causeText(err))
}

func causeText(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Detail
		}
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
