package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/store"
	"bookcatalog/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
			MaxBodyBytes:   1 << 20,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return newServer(ctx, cfg, store.NewMemory(), zerolog.Nop())
}

func TestServer_Probes(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for path, body := range map[string]string{"/healthz": "ok", "/readyz": "ready"} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, body, w.Body.String(), path)
	}
}

func TestServer_BookLifecycle(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/book", testutil.DunePayload()))
	created := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.NotEmpty(t, created.Header.Get(httpx.RequestIDHeader))
	assert.Equal(t, "nosniff", created.Header.Get("X-Content-Type-Options"))

	var book struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, created.DecodeData(&book))
	require.NotEmpty(t, book.ID)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/book/"+book.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/book/"+book.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/book/"+book.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_MetricsUseRoutePatterns(t *testing.T) {
	srv := newTestServer(t, testConfig())

	srv.ServeHTTP(httptest.NewRecorder(), testutil.NewRequest(http.MethodGet, "/book/abc", nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `route="GET /book/{id}"`)
	assert.Contains(t, body, `status="404"`)
	assert.False(t, strings.Contains(body, `route="/book/abc"`))
}

func TestServer_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Security.MaxBodyBytes = 16
	srv := newTestServer(t, cfg)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/book", testutil.DunePayload()))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestServer_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRPS = 0.001
	cfg.Security.RateLimitBurst = 1
	srv := newTestServer(t, cfg)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/book", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/book", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
