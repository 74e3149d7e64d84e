package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the listing API the front end was built against.
	DefaultBaseURL = "https://nextjs-rho-red-22.vercel.app"
	// DefaultTimeout bounds a single API round trip.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies AutoHub to the API.
	DefaultUserAgent = "autohub"

	maxBodyBytes = 4 << 20
)

// Config holds configuration for the API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches vehicles from the listing API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	inflight  singleflight.Group
}

// NewClient creates a client for the API at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
		logger:    logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Vehicle fetches a single vehicle with its seller.
func (c *Client) Vehicle(ctx context.Context, id string) (*Vehicle, error) {
	id = strings.TrimSpace(id)
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	// The round trip is detached from the first caller so that a cancelled
	// request does not fail the others waiting on the same key.
	detached := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan("vehicle/"+id, func() (any, error) {
		var env envelope
		if err := c.get(detached, "vehicle data", "/api/vehicle/"+url.PathEscape(id), nil, &env); err != nil {
			return nil, err
		}
		return decodeVehicle(&env)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Vehicle).clone(), nil
	}
}

// Vehicles fetches one page of the catalog.
func (c *Client) Vehicles(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Make != "" {
		params.Set("make", q.Make)
	}
	if q.Model != "" {
		params.Set("model", q.Model)
	}

	var env envelope
	if err := c.get(ctx, "vehicle listings", "/api/vehicles", params, &env); err != nil {
		return nil, err
	}
	return decodePage(&env, q)
}

// get performs a GET against the API and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, resource, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api request failed", slog.String("url", target), slog.Any("error", err))
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Resource: resource, Code: resp.StatusCode, Status: statusText(resp)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	return nil
}

// statusText returns the reason phrase of the response ("Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
