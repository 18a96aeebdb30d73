package conformance_test

import (
	"net/http"
	"testing"
)

func TestLanguagesNeedsNoAuth(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/languages", "", nil)
	mustStatus(t, resp, http.StatusOK)
	langs := readJSONArray(t, resp)
	if len(langs) == 0 {
		t.Error("expected at least one language")
	}
}

func TestMissingTokenRejected(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/workspaces", "", map[string]string{"id": "wks-noauth"})
	mustStatus(t, resp, http.StatusUnauthorized)
	assertErrorEnvelope(t, readJSON(t, resp), "UNAUTHORIZED")
}

func TestInvalidTokenRejected(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/workspaces", "not-a-token", map[string]string{"id": "wks-badtoken"})
	mustStatus(t, resp, http.StatusUnauthorized)
	assertErrorEnvelope(t, readJSON(t, resp), "UNAUTHORIZED")
}

func TestBadCredentialsRejected(t *testing.T) {
	_, login := newSession(t)

	resp := doRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"login":    login,
		"password": "wrong",
	})
	mustStatus(t, resp, http.StatusUnauthorized)
	assertErrorEnvelope(t, readJSON(t, resp), "UNAUTHORIZED")
}

func TestUnknownRouteEnvelope(t *testing.T) {
	token, _ := newSession(t)

	resp := doRequest(t, http.MethodGet, "/api/no/such/route", token, nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorEnvelope(t, readJSON(t, resp), "NOT_FOUND")
}

func TestCorrelationIDHeader(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/languages", "", nil)
	defer func() { _ = resp.Body.Close() }()

	if resp.Header.Get("X-Correlation-Id") == "" {
		t.Error("expected X-Correlation-Id header to be set")
	}
}

func TestDuplicateAccountConflict(t *testing.T) {
	_, login := newSession(t)

	resp := doRequest(t, http.MethodPost, "/api/accounts", "", map[string]string{
		"login":    login,
		"name":     login,
		"password": "password",
	})
	mustStatus(t, resp, http.StatusConflict)
	assertErrorEnvelope(t, readJSON(t, resp), "CONFLICT")
}
