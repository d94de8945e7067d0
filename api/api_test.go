package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	transport "feedfilter/internal/transport/http"

	"github.com/stretchr/testify/assert"
)

type okGetter struct{}

func (okGetter) GetFeed(ctx context.Context, name string) ([]byte, error) {
	return []byte("<rss/>"), nil
}

type names []string

func (n names) Names() []string { return n }

type size int

func (s size) Len() int { return int(s) }

func TestHandler_AppliesMiddleware(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	routes := transport.NewApi(okGetter{}, names{"dappered"}, size(0), nil, log)
	h := New(routes, transport.NewRateLimiter(100, 100, log), log).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/dappered", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<rss/>", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
