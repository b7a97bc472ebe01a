package pdf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.pdf":
			w.WriteHeader(http.StatusNotFound)
		case "/large.pdf":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(strings.Repeat("%", 2048)))
		case "/agent":
			if r.Header.Get("User-Agent") != userAgent {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("not a pdf"))
		default:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html>página indisponível</html>"))
		}
	}))
	defer svr.Close()

	adapter := New(WithLogger(zaptest.NewLogger(t)), WithHttpClient(svr.Client()), WithMaxBodySize(1024))

	tests := []struct {
		name          string
		path          string
		expectedError string
	}{
		{"not found", "/missing.pdf", "download failed: 404 Not Found"},
		{"too large", "/large.pdf", "document exceeds 1024 bytes"},
		// Both bodies reach the decoder, which rejects them.
		{"browser user agent", "/agent", ""},
		{"not a pdf", "/doc.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.Fetch(context.Background(), svr.URL+tt.path)
			require.Error(t, err)
			if tt.expectedError == "" {
				assert.NotContains(t, err.Error(), "download failed")
				return
			}
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestFetch_Cancelled(t *testing.T) {
	t.Parallel()

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer svr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithHttpClient(svr.Client())).Fetch(ctx, svr.URL)
	require.ErrorIs(t, err, context.Canceled)
}
