package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeSubmitFailed, "Test error")
	assert.Equal(t, "[1100] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeSubmitFailed, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1100")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeStatusFailed, "Status check failed", cause)

	// Test Unwrap
	assert.Equal(t, cause, err.Unwrap())

	// Test errors.Is
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeJobFailed, "Job failed")

	assert.True(t, Is(err, CodeJobFailed))
	assert.False(t, Is(err, CodeSubmitFailed))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeJobFailed))
}

func TestGetCode(t *testing.T) {
	// AppError
	appErr := New(CodeInconsistentState, "Inconsistent state")
	assert.Equal(t, CodeInconsistentState, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	// AppError
	appErr := New(CodeFileNotFound, "File not found")
	assert.Equal(t, "File not found", GetMessage(appErr))

	// Regular error returns error message
	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithDetail(CodeSubmitFailed, "Submit failed", "URL: https://example.com", cause)

	assert.Equal(t, CodeSubmitFailed, err.Code)
	assert.Equal(t, "Submit failed", err.Message)
	assert.Equal(t, "URL: https://example.com", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	// Verify predefined errors have correct codes
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeSubmitFailed, ErrSubmitFailed.Code)
	assert.Equal(t, CodeStatusFailed, ErrStatusFailed.Code)
	assert.Equal(t, CodeNoOutput, ErrNoOutput.Code)
	assert.Equal(t, CodeInvalidParams, ErrEmptyTopic.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
}
