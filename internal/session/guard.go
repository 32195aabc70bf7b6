package session

import (
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

// guardLocked keeps a Failed record from ever showing an empty error. It
// restores the last recorded error, promotes a leftover message, or, when
// neither exists, returns the record to Idle. Other statuses are untouched.
// It reports whether the record changed.
func (c *Controller) guardLocked() bool {
	if c.record.Status != types.LifecycleFailed {
		return false
	}

	if c.record.Error != "" {
		if c.lastError == "" {
			c.lastError = c.record.Error
		}
		return false
	}

	switch {
	case c.lastError != "":
		c.record.Error = c.lastError
		c.log().Warn("[Session] restored cleared error", zap.String("error", c.lastError))
	case c.record.Message != "":
		c.record.Error = c.record.Message
		c.record.Message = ""
		c.lastError = c.record.Error
		c.log().Warn("[Session] promoted message to error", zap.String("error", c.lastError))
	default:
		c.disarmLocked()
		c.resetLocked()
		c.log().Warn("[Session] failed state without error, back to idle")
	}
	return true
}
