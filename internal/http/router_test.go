package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"intervention-service/internal/auth"
	"intervention-service/internal/http/middleware"
	"intervention-service/internal/model"
)

func newTestRouter() http.Handler {
	parser := auth.NewParser("test-secret")
	handler := NewHandler(nil, nil, nil, nil, nil, zerolog.Nop())
	return NewRouter(handler, middleware.Auth(parser), "test", zerolog.Nop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRequireBearerToken(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/zones"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/interventions/stats"},
		{http.MethodPost, "/new-interventions"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", tt.method, tt.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Errorf("%s %s error body = %q, want {\"error\": ...}", tt.method, tt.path, rec.Body.String())
		}
	}
}

func TestAuthMiddlewareAcceptsIssuedToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(&model.User{ID: 1, Email: "admin@hch.fr", Roles: model.RoleList{model.RoleAdmin}})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parser := auth.NewParser("test-secret")
	router := NewRouter(NewHandler(nil, nil, nil, nil, nil, zerolog.Nop()), middleware.Auth(parser), "test", zerolog.Nop())

	// A bad id still reaches the handler, proving the middleware let the
	// request through.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/zones/not-a-number", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("DELETE /zones/not-a-number with token = %d, want 400 from the handler", rec.Code)
	}
}
