// Package rest implements the farm API ports over HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
)

const defaultTimeout = 15 * time.Second

// Client talks to the farm API. It holds no cache and no session state;
// callers supply the auth token via farmapi.WithToken.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure interface conformance
var _ farmapi.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a farm API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login implements farmapi.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.post(ctx, "/login", body, false)
	if err != nil {
		return "", &farmapi.NetworkError{Operation: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &farmapi.FetchError{
			Operation:  "login",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Invalid credentials."),
		}
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("login: decode response: %w", err)
	}
	return out.Token, nil
}

// Register implements farmapi.Authenticator.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	resp, err := c.post(ctx, "/register", body, false)
	if err != nil {
		return &farmapi.NetworkError{Operation: "register", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &farmapi.FetchError{
			Operation:  "register",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to create account."),
		}
	}
	return nil
}

// UserID implements farmapi.UserDirectory.
func (c *Client) UserID(ctx context.Context, email string) (int64, error) {
	u := c.baseURL + "/api/auth/userid?email=" + url.QueryEscape(email)
	resp, err := c.get(ctx, u)
	if err != nil {
		return 0, &farmapi.NetworkError{Operation: "user lookup", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &farmapi.LookupError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to fetch user ID"),
		}
	}

	var out struct {
		UserID int64 `json:"userid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("user lookup: decode response: %w", err)
	}
	return out.UserID, nil
}

// ListProjects implements farmapi.ProjectStore.
func (c *Client) ListProjects(ctx context.Context, userID int64) ([]core.Project, error) {
	u := c.baseURL + "/api/projects?user_id=" + strconv.FormatInt(userID, 10)
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, &farmapi.NetworkError{Operation: "list projects", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &farmapi.FetchError{
			Operation:  "list projects",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to fetch projects"),
		}
	}

	var projects []core.Project
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("list projects: decode response: %w", err)
	}
	return projects, nil
}

// CreateProject implements farmapi.ProjectStore. The name presence check
// runs before any network call.
func (c *Client) CreateProject(ctx context.Context, draft core.ProjectDraft) (core.Project, error) {
	if err := draft.Validate(); err != nil {
		return core.Project{}, &farmapi.ValidationError{Err: err}
	}

	resp, err := c.post(ctx, "/api/projects", draft, true)
	if err != nil {
		return core.Project{}, &farmapi.NetworkError{Operation: "create project", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.Project{}, &farmapi.FetchError{
			Operation:  "create project",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to create project"),
		}
	}

	var project core.Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return core.Project{}, fmt.Errorf("create project: decode response: %w", err)
	}
	return project, nil
}

// ListRecords implements farmapi.RecordStore. There is one endpoint per
// record type.
func (c *Client) ListRecords(ctx context.Context, projectID int64, t core.RecordType) ([]core.FinancialRecord, error) {
	if !t.IsValid() {
		return nil, &farmapi.ValidationError{Err: core.ErrInvalidRecordType}
	}
	u := fmt.Sprintf("%s/api/finance/%s/%d", c.baseURL, t, projectID)
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, &farmapi.NetworkError{Operation: "list records", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &farmapi.FetchError{
			Operation:  "list records",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to fetch "+t.String()+" records"),
		}
	}

	var records []core.FinancialRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("list records: decode response: %w", err)
	}
	return records, nil
}

// CreateRecord implements farmapi.RecordStore. All required-field checks
// run before any network call.
func (c *Client) CreateRecord(ctx context.Context, draft core.RecordDraft) (core.FinancialRecord, error) {
	if err := draft.Validate(); err != nil {
		return core.FinancialRecord{}, &farmapi.ValidationError{Err: err}
	}

	resp, err := c.post(ctx, "/api/finance", draft, true)
	if err != nil {
		return core.FinancialRecord{}, &farmapi.NetworkError{Operation: "create record", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.FinancialRecord{}, &farmapi.FetchError{
			Operation:  "create record",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, "Failed to create "+draft.Type.String()),
		}
	}

	var record core.FinancialRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return core.FinancialRecord{}, fmt.Errorf("create record: decode response: %w", err)
	}
	return record, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(ctx, req)
	return c.httpClient.Do(req)
}

func (c *Client) post(ctx context.Context, path string, body any, authorized bool) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		c.authorize(ctx, req)
	}
	return c.httpClient.Do(req)
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if token, ok := farmapi.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// errorMessage extracts the backend's {message} from an error body, reading
// it exactly once. Unparseable bodies yield the fallback.
func errorMessage(body io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return fallback
	}
	var out struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return fallback
	}
	if out.Message != "" {
		return out.Message
	}
	if out.Detail != "" {
		return out.Detail
	}
	return fallback
}
