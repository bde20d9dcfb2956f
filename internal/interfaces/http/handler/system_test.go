package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler()
	h.started = time.Now().Add(-90 * time.Second)

	w := httptest.NewRecorder()
	h.GetSystemInfo(stockCtx(w, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	info, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "prodstock", info["name"])
	assert.Equal(t, "1.0.0", info["version"])
	assert.NotEmpty(t, info["go_version"])
	assert.GreaterOrEqual(t, info["uptime_seconds"].(float64), float64(90))
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler()

	w := httptest.NewRecorder()
	h.Ping(stockCtx(w, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	body, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pong", body["message"])

	ts, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}
