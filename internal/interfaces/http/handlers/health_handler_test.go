package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/pkg/types/common"
)

func okCheck(name string) HealthChecker {
	return CheckFunc{CheckName: name, Fn: func(context.Context) error { return nil }}
}

func failCheck(name, msg string) HealthChecker {
	return CheckFunc{CheckName: name, Fn: func(context.Context) error { return errors.New(msg) }}
}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) common.HealthResponse {
	t.Helper()
	var resp common.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthHandler_Liveness(t *testing.T) {
	t.Parallel()
	h := NewHealthHandler("v1.0.0", failCheck("fragments", "down"))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w)
	assert.Equal(t, common.HealthUp, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.True(t, fixed.Equal(resp.Timestamp))
	assert.Empty(t, resp.Components)
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantCode   int
		wantStatus common.HealthStatus
	}{
		{"no checkers", nil, http.StatusOK, common.HealthUp},
		{"all healthy", []HealthChecker{okCheck("b"), okCheck("a")}, http.StatusOK, common.HealthUp},
		{"one failing", []HealthChecker{okCheck("a"), failCheck("fragments", "empty table")}, http.StatusServiceUnavailable, common.HealthDown},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler("dev", tt.checkers...)

			w := httptest.NewRecorder()
			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decodeHealth(t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Components, len(tt.checkers))
		})
	}
}

func TestHealthHandler_ReadinessComponentsSorted(t *testing.T) {
	t.Parallel()
	h := NewHealthHandler("dev", okCheck("zeta"), failCheck("alpha", "broken"))

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	resp := decodeHealth(t, w)
	require.Len(t, resp.Components, 2)
	assert.Equal(t, "alpha", resp.Components[0].Name)
	assert.Equal(t, "broken", resp.Components[0].Message)
	assert.Equal(t, "zeta", resp.Components[1].Name)
}

//Personal.AI order the ending
