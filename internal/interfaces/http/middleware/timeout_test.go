package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeout_SetsDeadlineWithoutWriting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		expired bool
	}{
		{"expired", time.Nanosecond, true},
		{"open", time.Minute, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen error
			var hasDeadline bool
			h := Timeout(tt.timeout)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, hasDeadline = r.Context().Deadline()
				if tt.expired {
					<-r.Context().Done()
				}
				seen = r.Context().Err()
			}))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.True(t, hasDeadline)
			assert.False(t, w.Flushed)
			assert.Empty(t, w.Body.String())
			assert.Empty(t, w.Header())
			if tt.expired {
				require.Error(t, seen)
				assert.ErrorIs(t, seen, context.DeadlineExceeded)
			} else {
				assert.NoError(t, seen)
			}
		})
	}
}

//Personal.AI order the ending
