package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fer-gc05/AventuraLocalApi/internal/config"
)

func newTestServer() *Server {
	return NewServer(config.Config{ServerPort: ":0", JWTSecret: "test-secret"}, nil, nil)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/destinations/nearby?destination_id=d1"},
		{http.MethodGet, "/events/recommendations"},
		{http.MethodGet, "/users/statistics"},
		{http.MethodPost, "/communities/c1/join"},
		{http.MethodPost, "/tours/t1/reserve"},
	}
	for _, tc := range protected {
		resp, err := s.App.Test(httptest.NewRequest(tc.method, tc.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestUnknownPathIs404(t *testing.T) {
	s := newTestServer()

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", resp.StatusCode)
	}
}
