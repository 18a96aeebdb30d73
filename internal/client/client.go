// Package client is a typed HTTP client for the PLM server REST API.
//
// A Client is bound to one authenticated identity. Acting as another user
// means logging in a second client, never mutating a shared one, so clients
// are safe for concurrent use.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// APIError is the server's error envelope together with the HTTP status it
// arrived with.
type APIError struct {
	StatusCode    int    `json:"-"`
	Message       string `json:"message"`
	Category      string `json:"category"`
	CorrelationID string `json:"correlationId"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("plm: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("plm: request failed with status %d", e.StatusCode)
}

// IsConflict reports whether err is a server conflict, e.g. creating an
// account or part number that already exists.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsNotFound reports whether err is a server not-found response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client calls the PLM server REST API under <baseURL>/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	login      string
}

// New creates an unauthenticated client for the given server base URL
// (protocol and host, no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login creates a client and authenticates it in one step.
func Login(ctx context.Context, baseURL, login, password string) (*Client, error) {
	c := New(baseURL)
	if err := c.Authenticate(ctx, login, password); err != nil {
		return nil, err
	}
	return c, nil
}

// Login returns the login the client authenticated as, or "" for a guest
// client.
func (c *Client) Login() string {
	return c.login
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate obtains a bearer token for the given credentials and keeps it
// for all subsequent requests.
func (c *Client) Authenticate(ctx context.Context, login, password string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return fmt.Errorf("login as %s: %w", login, err)
	}
	c.token = resp.Token
	c.login = login
	return nil
}

// Ping checks server availability with an unauthenticated request.
func (c *Client) Ping(ctx context.Context) error {
	var languages []string
	if err := c.do(ctx, http.MethodGet, "/api/languages", nil, &languages); err != nil {
		return fmt.Errorf("ping server: %w", err)
	}
	return nil
}

// do performs one JSON request against the API and decodes the response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// upload performs a multipart file upload to the given API path.
func (c *Client) upload(ctx context.Context, path, fileName string, content io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("upload", fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", fileName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		_ = json.Unmarshal(payload, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func pathEscape(segments ...string) string {
	out := ""
	for _, s := range segments {
		out += "/" + url.PathEscape(s)
	}
	return out
}
