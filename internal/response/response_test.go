package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

func TestFromError(t *testing.T) {
	assert.Equal(t, Response{Msg: "Success"}, FromError(nil))

	wrapped := fmt.Errorf("outer: %w", apperrors.WrapWithDetail(apperrors.CodeSubmitFailed, "Failed to start generation", "boom", errors.New("x")))
	got := FromError(wrapped)
	assert.EqualValues(t, apperrors.CodeSubmitFailed, got.Error)
	assert.Equal(t, "Failed to start generation", got.Msg)
	assert.Equal(t, "boom", got.Detail)

	plain := FromError(errors.New("plain"))
	assert.EqualValues(t, apperrors.CodeUnknown, plain.Error)
	assert.Equal(t, "plain", plain.Msg)
}

func TestErrorWithData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithData(c, apperrors.ErrNotFound, gin.H{"id": "x"})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, apperrors.CodeNotFound, body["error"])
	assert.Equal(t, map[string]any{"id": "x"}, body["data"])
}
