package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openplm/plmseed/internal/mockplm/api"
)

func okValidator(_ context.Context, token string) (string, error) {
	if token == "good-token" {
		return "rob", nil
	}
	return "", errors.New("unknown token")
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			panic("test panic")
		}),
		api.RequestID(),
		api.Recovery(),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var capturedID string
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = api.CorrelationID(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
		api.RequestID(),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	if capturedID == "" {
		t.Error("correlation ID is empty")
	}

	headerID := rec.Header().Get("X-Correlation-Id")
	if headerID == "" {
		t.Error("X-Correlation-Id header is empty")
	}
	if headerID != capturedID {
		t.Errorf("header ID %q != context ID %q", headerID, capturedID)
	}

	// UUID v4 format: 8-4-4-4-12
	if len(capturedID) != 36 {
		t.Errorf("UUID length = %d, want 36", len(capturedID))
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	var login string
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login = api.CurrentUser(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
		api.RequestID(),
		api.Auth(okValidator),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", http.NoBody)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if login != "rob" {
		t.Errorf("current user = %q, want %q", login, "rob")
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		api.RequestID(),
		api.Auth(okValidator),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", http.NoBody)
	req.Header.Set("Authorization", "Bearer wrong-token")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		api.RequestID(),
		api.Auth(okValidator),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", http.NoBody)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareLoginPassesThrough(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		api.RequestID(),
		api.Auth(okValidator),
	)

	for _, path := range []string{"/api/auth/login", "/api/languages"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d (unauthenticated endpoint)", path, rec.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddlewareSignUpPassesThrough(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}),
		api.RequestID(),
		api.Auth(okValidator),
	)

	// Sign-up happens before any session exists.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", http.NoBody)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("POST status = %d, want %d (unauthenticated sign-up)", rec.Code, http.StatusCreated)
	}

	// Only the POST is open; other methods on the path still need a token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/accounts", http.NoBody)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJSONContentTypeMiddleware(t *testing.T) {
	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		api.JSONContentType(),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-before")
			next.ServeHTTP(w, r)
			order = append(order, "m1-after")
		})
	}
	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-before")
			next.ServeHTTP(w, r)
			order = append(order, "m2-after")
		})
	}

	handler := api.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusOK)
		}),
		m1, m2,
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	expected := []string{"m1-before", "m2-before", "handler", "m2-after", "m1-after"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, want %v", order, expected)
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("order[%d] = %q, want %q", i, order[i], v)
		}
	}
}
