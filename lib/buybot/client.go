// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package buybot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/zinc-io/buybot/lib/version"
)

// DefaultURL is the production service root.
const DefaultURL = "https://buybot.zinc.io/"

// DefaultTimeout bounds each individual request.
const DefaultTimeout = 31 * time.Second

const requestIDHeader = "X-Request-Id"

// DefaultBaseURL returns $BUYBOT_URL, or DefaultURL when unset.
func DefaultBaseURL() string {
	if override := os.Getenv("BUYBOT_URL"); override != "" {
		return override
	}
	return DefaultURL
}

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the service root. Empty means DefaultBaseURL().
	BaseURL string
	// Token is the bearer token sent on authenticated calls. It may be
	// empty.
	Token string
	// HTTPClient is the underlying transport. If nil, resty's default
	// client is used.
	HTTPClient *http.Client
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// Logger receives per-request debug records. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client issues requests against the buybot service.
type Client struct {
	baseURL string
	token   string
	resty   *resty.Client
	logger  *slog.Logger
}

// NewClient creates a Client.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL()
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("buybot: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("buybot: base URL %q must be absolute", baseURL)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var transport *resty.Client
	if config.HTTPClient != nil {
		// resty sets Timeout on the client it is given.
		httpClient := *config.HTTPClient
		transport = resty.NewWithClient(&httpClient)
	} else {
		transport = resty.New()
	}
	// Paths are appended to the base URL, so a path prefix such as
	// https://host/staging/ is kept on every request.
	baseURL = strings.TrimRight(baseURL, "/")
	transport.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", version.UserAgent()).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: logger})

	transport.OnAfterResponse(func(_ *resty.Client, response *resty.Response) error {
		logger.Debug("api request",
			"method", response.Request.Method,
			"url", response.Request.URL,
			"status", response.StatusCode(),
			"duration", response.Time(),
			"request_id", response.Request.Header.Get(requestIDHeader),
		)
		return nil
	})
	transport.OnError(func(request *resty.Request, err error) {
		logger.Debug("api request failed",
			"method", request.Method,
			"url", request.URL,
			"request_id", request.Header.Get(requestIDHeader),
			"error", err,
		)
	})

	return &Client{
		baseURL: baseURL,
		token:   config.Token,
		resty:   transport,
		logger:  logger,
	}, nil
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// HasToken reports whether a bearer token is configured.
func (c *Client) HasToken() bool { return c.token != "" }

// Call issues an authenticated request and returns the response body.
// A relative path is resolved against the base URL. body, if non-nil,
// is sent as JSON. Any non-2xx status yields an *APIError.
func (c *Client) Call(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.do(ctx, method, path, body, true, nil)
}

// callJSON is Call followed by decoding the response into result.
func (c *Client) callJSON(ctx context.Context, method, path string, body, result any) error {
	responseBody, err := c.Call(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(responseBody, result); err != nil {
		return fmt.Errorf("buybot: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authenticated bool, query url.Values) ([]byte, error) {
	request := c.resty.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
	if authenticated {
		// Sent even when empty so the service reports the 401.
		request.SetHeader("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		request.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if query != nil {
		request.SetQueryParamsFromValues(query)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("buybot: %s %s: %w", method, path, err)
	}
	if !response.IsSuccess() {
		return response.Body(), newAPIError(method, path, response.StatusCode(), response.Body())
	}
	return response.Body(), nil
}
