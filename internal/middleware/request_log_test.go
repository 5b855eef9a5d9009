package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-wellness-timeline/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Options{Level: logger.Warn})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLog(log))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Get("/bad", func(w http.ResponseWriter, _ *http.Request) { http.Error(w, "nope", http.StatusBadRequest) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { http.Error(w, "internal error", http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	assert.NotContains(t, out, "path=/ok")
	assert.Contains(t, out, "level=warn method=GET msg=request rejected path=/bad")
	assert.Contains(t, out, "level=error method=GET msg=request failed path=/boom")
	assert.Contains(t, out, "component=http")
	assert.Contains(t, out, "request_id=")
}
