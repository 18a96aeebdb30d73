package conformance_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"
	"testing"
)

var sessionSeq atomic.Int64

// doRequest makes an HTTP request to the test server and returns the response.
// An empty token leaves the request unauthenticated. The caller is responsible
// for closing the response body.
func doRequest(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverURL+path, bodyReader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// newSession creates a fresh account and logs it in. The server process is
// shared by every test, so each session gets a unique login.
func newSession(t *testing.T) (token, login string) {
	t.Helper()

	login = fmt.Sprintf("user%d", sessionSeq.Add(1))
	resp := doRequest(t, http.MethodPost, "/api/accounts", "", map[string]string{
		"login":    login,
		"name":     login,
		"email":    login + "@example.com",
		"password": "password",
	})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"login":    login,
		"password": "password",
	})
	mustStatus(t, resp, http.StatusOK)
	body := readJSON(t, resp)
	token = assertIsString(t, body, "token")
	if token == "" {
		t.Fatal("login returned an empty token")
	}
	return token, login
}

// newWorkspace creates a workspace administered by the session's account and
// returns its id. The admin defaults to the calling identity.
func newWorkspace(t *testing.T, token string) string {
	t.Helper()

	id := fmt.Sprintf("wks-conf-%d", sessionSeq.Add(1))
	resp := doRequest(t, http.MethodPost, "/api/workspaces", token, map[string]string{
		"id": id,
	})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()
	return id
}

// doUpload posts a file as a multipart form to the given path.
func doUpload(t *testing.T, path, token, fileName, contents string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("upload", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, contents); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, serverURL+path, &buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// readJSON reads the response body and unmarshals it into a map.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// readJSONArray reads the response body and unmarshals a top-level array.
func readJSONArray(t *testing.T, resp *http.Response) []any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result []any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// mustStatus asserts the HTTP response has the expected status code.
func mustStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d; body=%s", expected, resp.StatusCode, string(b))
	}
}

// assertErrorEnvelope validates the response matches the standard error format.
func assertErrorEnvelope(t *testing.T, body map[string]any, expectedCategory string) {
	t.Helper()
	assertStringField(t, body, "status", "error")
	assertFieldPresent(t, body, "message")
	assertFieldPresent(t, body, "correlationId")
	if expectedCategory != "" {
		assertStringField(t, body, "category", expectedCategory)
	}
}

// assertFieldPresent checks that a key exists in the map.
func assertFieldPresent(t *testing.T, m map[string]any, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Errorf("expected field %q to be present, got keys: %v", key, mapKeys(m))
	}
}

// assertStringField checks that a key exists and has the expected string value.
func assertStringField(t *testing.T, m map[string]any, key, expected string) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return
	}
	if s != expected {
		t.Errorf("field %q: expected %q, got %q", key, expected, s)
	}
}

// assertIsString checks that a field is a string and returns its value.
func assertIsString(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return ""
	}
	return s
}

// assertIsArray checks that a field is a JSON array and returns it.
func assertIsArray(t *testing.T, m map[string]any, key string) []any {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		t.Errorf("expected field %q to be array, got %T", key, v)
		return nil
	}
	return a
}

// toObject converts a slice element to a map.
func toObject(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

// mapKeys returns the keys of a map for diagnostic output.
func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
