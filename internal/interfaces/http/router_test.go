package http

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/internal/config"
	"github.com/turtacn/FragSAR/internal/interfaces/http/middleware"
	"github.com/turtacn/FragSAR/internal/testutil"
	"github.com/turtacn/FragSAR/pkg/types/common"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Metrics.EnableGoMetrics = false
	cfg.Metrics.EnableProcessMetrics = false
	if mutate != nil {
		mutate(cfg)
	}
	app, err := NewApp(cfg, "test", testutil.NewMockLogger())
	require.NoError(t, err)
	return app
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var er common.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&er))
	return er.Detail
}

func TestNewRouter_NilHandlers_NoPanic(t *testing.T) {
	t.Parallel()

	var h http.Handler
	require.NotPanics(t, func() { h = NewRouter(RouterConfig{}) })

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/enumerate", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRouter_NotFoundIsJSON(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "Not Found", decodeDetail(t, rec.Body))
}

func TestNewRouter_MethodNotAllowedIsJSON(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodGet, "/enumerate?smiles=C", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", decodeDetail(t, rec.Body))
}

func TestNewRouter_HealthEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var hr common.HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&hr))
		assert.Equal(t, common.HealthUp, hr.Status, path)
		assert.Equal(t, "test", hr.Version, path)
	}
}

func TestNewRouter_EnumerateEndToEnd(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, func(c *config.Config) { c.Server.EnableGzip = false })
	req := httptest.NewRequest(http.MethodPost, "/enumerate?smiles=Cc1ccccc1", strings.NewReader(`["F"]`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(app.Server.Handler(), req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var resp moltypes.EnumerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Rows, 4)
	for _, row := range resp.Rows {
		assert.Contains(t, row.SMILES, "F")
		assert.Greater(t, row.MW, 92.0)
	}
}

func TestNewRouter_EnumerateBadSMILES(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodPost, "/enumerate?smiles=C1CC", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad SMILES", decodeDetail(t, rec.Body))
}

func TestNewRouter_GroupsRoute(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodGet, "/groups", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp moltypes.GroupsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Groups, 31)
	assert.Equal(t, "F", resp.Groups[0].Tag)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/enumerate", nil)
	req.Header.Set("Origin", "https://notebook.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := serve(app.Server.Handler(), req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestNewRouter_CORSSubdomainWildcard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wildcard bool
		origin   string
		want     string
	}{
		{"subdomain with wildcard on", true, "https://lab.example.org", "https://lab.example.org"},
		{"other domain with wildcard on", true, "https://lab.example.com", ""},
		{"subdomain with wildcard off", false, "https://lab.example.org", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(t, func(c *config.Config) {
				c.CORS.AllowedOrigins = []string{"*.example.org"}
				c.CORS.AllowWildcard = tt.wildcard
			})
			req := httptest.NewRequest(http.MethodGet, "/groups", nil)
			req.Header.Set("Origin", tt.origin)
			rec := serve(app.Server.Handler(), req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewRouter_CORSSimpleRequestExposesRequestID(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Origin", "https://notebook.example.org")
	rec := serve(app.Server.Handler(), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), middleware.RequestIDHeader)
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	h := app.Server.Handler()
	serve(h, httptest.NewRequest(http.MethodPost, "/enumerate?smiles=c1ccccc1&groups=Me", nil))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "fragsar_build_info")
	assert.Contains(t, body, `fragsar_http_requests_total{method="POST",route="/enumerate",status_code="200"} 1`)
	assert.Contains(t, body, `fragsar_enumerations_total{outcome="ok"} 1`)
	assert.Contains(t, body, "fragsar_fragment_table_size 31")
}

func TestNewRouter_MetricsDisabled(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, func(c *config.Config) { c.Metrics.Enabled = false })
	assert.Nil(t, app.Collector)

	rec := serve(app.Server.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(app.Server.Handler(), httptest.NewRequest(http.MethodPost, "/enumerate?smiles=C&groups=F", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_Gzip(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/enumerate?smiles=c1ccccc1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(app.Server.Handler(), req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	defer zr.Close()

	var resp moltypes.EnumerateResponse
	require.NoError(t, json.NewDecoder(zr).Decode(&resp))
	assert.Len(t, resp.Rows, 31)
}

func TestNewRouter_ProfilerOnlyInDebug(t *testing.T) {
	t.Parallel()

	release := newTestApp(t, nil)
	rec := serve(release.Server.Handler(), httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	debug := newTestApp(t, func(c *config.Config) { c.Server.Mode = "debug" })
	rec = serve(debug.Server.Handler(), httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	h := NewRouter(RouterConfig{Logger: testutil.NewMockLogger()})
	r, ok := h.(interface {
		Get(string, http.HandlerFunc)
	})
	require.True(t, ok)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "kaboom", decodeDetail(t, rec.Body))
}

// headerCounter records every WriteHeader call that reaches the wire.
type headerCounter struct {
	*httptest.ResponseRecorder
	statuses []int
}

func (h *headerCounter) WriteHeader(code int) {
	h.statuses = append(h.statuses, code)
	h.ResponseRecorder.WriteHeader(code)
}

func TestNewRouter_RequestTimeoutWritesOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		status  int
	}{
		{"deadline already passed", time.Nanosecond, http.StatusGatewayTimeout},
		{"deadline not reached", time.Minute, http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(t, func(c *config.Config) {
				c.Server.EnableGzip = false
				c.Server.RequestTimeout = tt.timeout
			})
			req := httptest.NewRequest(http.MethodPost, "/enumerate?smiles=c1ccccc1", strings.NewReader(`["F"]`))
			req.Header.Set("Content-Type", "application/json")
			w := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
			app.Server.Handler().ServeHTTP(w, req)

			assert.Equal(t, []int{tt.status}, w.statuses)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.status == http.StatusGatewayTimeout {
				assert.Contains(t, decodeDetail(t, w.Body), "timed out")
			}
		})
	}
}

//Personal.AI order the ending
