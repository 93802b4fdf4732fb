package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the placeholder API the signup form talks to.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	// DefaultTimeout bounds each request issued by the client.
	DefaultTimeout = 10 * time.Second

	photosPath = "photos"
	usersPath  = "users"
)

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client used for both steps.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger. Absorbed transport failures are logged at
// warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client implements ProfileFetcher and UserCreator over HTTP.
//
// Both calls fail open: transport errors, non-2xx statuses and undecodable
// bodies are converted into a neutral result and never returned. Callers
// cannot distinguish "no profile" from "request failed"; the logger is the
// only place the failure is visible.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var (
	_ ProfileFetcher = (*Client)(nil)
	_ UserCreator    = (*Client)(nil)
)

// New constructs a Client with defaults (placeholder API, 10s timeout, no-op
// logger).
func New(options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// FetchProfile issues GET {base}/photos/{sizeHint}. It returns nil when the
// request fails or the body holds no profile.
func (c *Client) FetchProfile(ctx context.Context, sizeHint int) *RemoteProfile {
	profile, err := c.fetchProfile(ctx, sizeHint)
	if err != nil {
		c.logger.Warn("fetch profile failed", zap.Int("size_hint", sizeHint), zap.Error(err))
		return nil
	}
	return profile
}

// CreateUser issues POST {base}/users with the record as JSON. It returns the
// zero Result when the request fails.
func (c *Client) CreateUser(ctx context.Context, record UserRecord) Result {
	result, err := c.createUser(ctx, record)
	if err != nil {
		c.logger.Warn("create user failed", zap.String("email", record.Email), zap.Error(err))
		return Result{}
	}
	return result
}

func (c *Client) fetchProfile(ctx context.Context, sizeHint int) (*RemoteProfile, error) {
	endpoint, err := c.endpoint(photosPath, strconv.Itoa(sizeHint))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("client: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var profile *RemoteProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("client: decode profile: %w", err)
	}
	if profile == nil || *profile == (RemoteProfile{}) {
		return nil, ErrEmptyProfile
	}
	return profile, nil
}

func (c *Client) createUser(ctx context.Context, record UserRecord) (Result, error) {
	endpoint, err := c.endpoint(usersPath)
	if err != nil {
		return Result{}, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Result{}, fmt.Errorf("client: encode user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("client: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	body, status, err := c.do(req)
	if err != nil {
		return Result{}, err
	}

	result := Result{StatusCode: status}
	if len(bytes.TrimSpace(body)) > 0 {
		// The body is opaque; a non-object payload is kept out of Result.
		if err := json.Unmarshal(body, &result.Body); err != nil {
			c.logger.Debug("create user response is not an object", zap.Error(err))
			result.Body = nil
		}
	}
	return result, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("client: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, StatusError{Code: resp.StatusCode, Method: req.Method, URL: req.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("client: read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) endpoint(segments ...string) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("client: base url is empty")
	}
	joined, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return "", fmt.Errorf("client: parse url: %w", err)
	}
	return joined, nil
}
