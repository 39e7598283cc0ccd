package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/pkg/types/common"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetryWait(time.Millisecond, 5*time.Millisecond)}, opts...)
	client, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client
}

type testLogger struct {
	mu      sync.Mutex
	lastMsg string
	count   int32
}

func (l *testLogger) Debugf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) Infof(format string, args ...interface{})  { l.log(format, args...) }
func (l *testLogger) Errorf(format string, args ...interface{}) { l.log(format, args...) }

func (l *testLogger) log(format string, args ...interface{}) {
	atomic.AddInt32(&l.count, 1)
	l.mu.Lock()
	l.lastMsg = fmt.Sprintf(format, args...)
	l.mu.Unlock()
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(common.ErrorResponse{Detail: detail})
}

// ---------------------------------------------------------------------------
// Constructor Tests
// ---------------------------------------------------------------------------

func TestNewClient_Success(t *testing.T) {
	t.Parallel()

	c, err := NewClient("http://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.BaseURL())
	assert.Equal(t, 3, c.retryMax)
	assert.Contains(t, c.userAgent, "fragsar-go-sdk/")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"", "ftp://invalid", "invalid-url", "://"} {
		_, err := NewClient(u)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, u)
	}
}

// ---------------------------------------------------------------------------
// Endpoint Tests
// ---------------------------------------------------------------------------

func TestClient_Enumerate(t *testing.T) {
	t.Parallel()

	var got map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/enumerate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"rows":[{"smiles":"Cc1ccccc1F","mw":110.13,"clogp":2.13,"hbd":0,"hba":0,"qed":0.5,"ro5":0}]}`)
	})

	rows, err := c.Enumerate(context.Background(), &moltypes.EnumerateRequest{
		SMILES: "Cc1ccccc1",
		Groups: []string{"F"},
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cc1ccccc1F", rows[0].SMILES)
	assert.InDelta(t, 110.13, rows[0].MW, 1e-9)

	assert.JSONEq(t, `"Cc1ccccc1"`, string(got["smiles"]))
	assert.JSONEq(t, `["F"]`, string(got["groups"]))
	assert.JSONEq(t, `5`, string(got["limit"]))
}

func TestClient_Enumerate_NilGroupsSendsNull(t *testing.T) {
	t.Parallel()

	var got map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"rows":null}`)
	})

	rows, err := c.Enumerate(context.Background(), &moltypes.EnumerateRequest{SMILES: "C"})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, "null", string(got["groups"]))
	assert.NotContains(t, got, "limit")
}

func TestClient_Enumerate_RequiresSMILES(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.Enumerate(context.Background(), &moltypes.EnumerateRequest{SMILES: "  "})
	assert.Error(t, err)
	_, err = c.Enumerate(context.Background(), nil)
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_Describe(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/describe", r.URL.Path)
		var req moltypes.DescribeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "c1ccccc1", req.SMILES)
		_, _ = io.WriteString(w, `{"smiles":"c1ccccc1","mw":78.11,"clogp":1.69,"hbd":0,"hba":0,"qed":0.44,"ro5":0}`)
	})

	row, err := c.Describe(context.Background(), "c1ccccc1")
	require.NoError(t, err)
	assert.InDelta(t, 1.69, row.CLogP, 1e-9)
}

func TestClient_Groups(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/groups", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"groups":[{"tag":"F","smiles":"*F"},{"tag":"Cl","smiles":"*Cl"}]}`)
	})

	groups, err := c.Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []moltypes.Group{{Tag: "F", SMILES: "*F"}, {Tag: "Cl", SMILES: "*Cl"}}, groups)
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readyz", r.URL.Path)
		_, _ = io.WriteString(w, `{"status":"up","version":"1.2.3","timestamp":"2024-01-01T00:00:00Z"}`)
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HealthUp, h.Status)
	assert.Equal(t, "1.2.3", h.Version)
}

// ---------------------------------------------------------------------------
// Error and Retry Tests
// ---------------------------------------------------------------------------

func TestClient_APIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		detail string
		client bool
	}{
		{"bad smiles", http.StatusBadRequest, "Bad SMILES", true},
		{"unknown group", http.StatusBadRequest, "Unknown group: Xx", true},
		{"validation", http.StatusUnprocessableEntity, "field required: smiles", true},
		{"server error", http.StatusInternalServerError, "boom", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Header().Set("X-Request-ID", "srv-id")
				writeDetail(w, tt.status, tt.detail)
			})

			_, err := c.Enumerate(context.Background(), &moltypes.EnumerateRequest{SMILES: "C"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, "srv-id", apiErr.RequestID)
			assert.Equal(t, tt.client, apiErr.IsClientError())
			assert.Equal(t, !tt.client, apiErr.IsServerError())
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
		})
	}
}

func TestClient_APIError_NonJSONBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "404 page not found\n")
	}, WithRetryMax(0))

	_, err := c.Groups(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "404 page not found", apiErr.Detail)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.Contains(t, apiErr.Error(), "HTTP 404")
}

func TestClient_RetriesOnUnavailable(t *testing.T) {
	t.Parallel()

	var calls int32
	logger := &testLogger{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeDetail(w, http.StatusServiceUnavailable, "warming up")
			return
		}
		_, _ = io.WriteString(w, `{"groups":[]}`)
	}, WithLogger(logger))

	groups, err := c.Groups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Greater(t, atomic.LoadInt32(&logger.count), int32(0))
}

func TestClient_RetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeDetail(w, http.StatusGatewayTimeout, "timeout")
	}, WithRetryMax(2))

	_, err := c.Groups(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_RetryResendsBody(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req moltypes.EnumerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.SMILES)
		if atomic.AddInt32(&calls, 1) == 1 {
			writeDetail(w, http.StatusBadGateway, "upstream")
			return
		}
		_, _ = io.WriteString(w, `{"rows":[]}`)
	})

	_, err := c.Enumerate(context.Background(), &moltypes.EnumerateRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_TransportErrorIsRetried(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithRetryMax(1), WithRetryWait(time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	_, err = c.Groups(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusServiceUnavailable, "busy")
	}, WithRetryWait(time.Second, time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Groups(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_CalculateBackoff(t *testing.T) {
	t.Parallel()

	c, err := NewClient("http://localhost", WithRetryWait(100*time.Millisecond, 300*time.Millisecond))
	require.NoError(t, err)

	b1 := c.calculateBackoff(1)
	assert.GreaterOrEqual(t, b1, 100*time.Millisecond)
	assert.Less(t, b1, 125*time.Millisecond)

	b5 := c.calculateBackoff(5)
	assert.GreaterOrEqual(t, b5, 300*time.Millisecond)
	assert.Less(t, b5, 375*time.Millisecond)
}

//Personal.AI order the ending
