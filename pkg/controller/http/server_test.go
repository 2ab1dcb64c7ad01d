package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	server "github.com/gatewarden-bot/gatewarden/pkg/controller/http"
)

func TestHealthEndpoint(t *testing.T) {
	s := server.New()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(200)
	gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")
}

func TestUnknownPath(t *testing.T) {
	s := server.New()

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(404)
}
