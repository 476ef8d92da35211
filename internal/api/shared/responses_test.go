package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusCreated,
			data:         map[string]string{"id": "0b9f3c9e-2f6d-4a53-9a59-3c6ef5a0a3d1"},
			expectedBody: `{"id":"0b9f3c9e-2f6d-4a53-9a59-3c6ef5a0a3d1"}`,
		},
		{name: "empty object", status: http.StatusOK, data: map[string]interface{}{}, expectedBody: `{}`},
		{name: "nil", status: http.StatusOK, data: nil, expectedBody: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody+"\n", w.Body.String())
		})
	}
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	logBuf, log := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	logger.AssertLogContains(t, logBuf, "failed to encode JSON response")
}

func TestRespondNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	RespondNoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnprocessableEntity, "Invalid request")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid request", response.Error)
	assert.Equal(t, "test-trace-id", response.TraceID)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task not found")

	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		message       string
		err           error
		expectedLevel string
	}{
		{
			name:          "server error",
			statusCode:    http.StatusInternalServerError,
			message:       "An unexpected error occurred",
			err:           errors.New("dial tcp: connect: connection refused"),
			expectedLevel: "ERROR",
		},
		{
			name:          "client error",
			statusCode:    http.StatusNotFound,
			message:       "Task not found",
			err:           errors.New("entity not found: task"),
			expectedLevel: "DEBUG",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logBuf, log := logger.NewTestLogger(t)
			ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
			ctx = logger.WithLogger(ctx, log)
			req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tc.statusCode, tc.message, tc.err)

			assert.Equal(t, tc.statusCode, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.message, response.Error)
			assert.Equal(t, "test-trace-id", response.TraceID)
			assert.NotContains(t, w.Body.String(), tc.err.Error())

			entries, err := logBuf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.expectedLevel, entries[0]["level"])
			assert.Equal(t, "test-trace-id", entries[0]["trace_id"])
			assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
		})
	}
}
