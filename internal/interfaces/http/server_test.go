package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/internal/testutil"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	server := NewServer(":8080", mux,
		WithTimeouts(time.Second, 2*time.Second, 3*time.Second),
		WithShutdownTimeout(4*time.Second),
	)

	require.NotNil(t, server)
	assert.Equal(t, ":8080", server.Addr())
	assert.Equal(t, time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 2*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 3*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 4*time.Second, server.shutdownTimeout)
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	t.Parallel()

	server := NewServer(":0", http.NewServeMux())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(ctx))
}

func TestServer_RunListener_ServesUntilCanceled(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := testutil.NewMockLogger()
	server := NewServer(ln.Addr().String(), mux, WithLogger(logger), WithShutdownTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunListener(ctx, ln) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "pong", body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.True(t, logger.HasMessage("info", "HTTP server listening"))
	assert.True(t, logger.HasMessage("info", "shutting down HTTP server"))
}

func TestServer_RunFailsOnBadAddress(t *testing.T) {
	t.Parallel()

	server := NewServer("256.0.0.1:bad", http.NewServeMux())
	err := server.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

//Personal.AI order the ending
