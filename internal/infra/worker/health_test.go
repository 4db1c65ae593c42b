package worker

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthServer_Health(t *testing.T) {
	hs := NewHealthServer(":0", discardLogger())

	rr := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}

func TestHealthServer_Readiness(t *testing.T) {
	hs := NewHealthServer(":0", discardLogger())

	rr := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, "not ready until wiring completes")

	hs.SetReady(true)
	rr = httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ready")
}

func TestHealthServer_Metrics(t *testing.T) {
	hs := NewHealthServer(":0", discardLogger())

	rr := httptest.NewRecorder()
	hs.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
