package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"volumeapi/internal/config"
	"volumeapi/internal/volume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	cfg := config.New()
	cfg.StoreDriver = config.DriverMemory
	repo, err := volume.Open(context.Background(), cfg)
	require.NoError(t, err)
	return newRouter(cfg, volume.NewService(volume.NewInstrumentedRepo(repo)))
}

func TestRouting(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/volumes", "", http.StatusOK},
		{http.MethodPost, "/volumes", `{"title":"Dune"}`, http.StatusCreated},
		{http.MethodGet, "/volumes/Dune", "", http.StatusOK},
		{http.MethodGet, "/volumes/author/Nobody", "", http.StatusNotFound},
		{http.MethodGet, "/volumes/genre/None", "", http.StatusNotFound},
		{http.MethodGet, "/volumes/year/1900", "", http.StatusNotFound},
		{http.MethodPut, "/volumes/abc", `{}`, http.StatusMethodNotAllowed},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}
