package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"alias-resolver/internal/shared"
)

// 1. Constants and types
const (
	DefaultServer       = "https://musicbrainz.org"
	apiPath             = "/ws/2/"
	defaultUserAgent    = "alias-resolver/1.0"
	defaultTimeout      = 30 * time.Second
	defaultRateLimit    = 1 * time.Second // MusicBrainz asks for one request per second
	defaultBurstLimit   = 1
	defaultMaxRetries   = 5
	defaultInitialDelay = 2 * time.Second
	defaultMaxDelay     = 60 * time.Second
)

// Config holds configuration for MusicBrainz API client
type Config struct {
	Server       string        `json:"server"`
	UserAgent    string        `json:"user_agent"`
	Timeout      time.Duration `json:"timeout"`
	MaxRetries   int           `json:"max_retries"`
	InitialDelay time.Duration `json:"initial_delay"`
	MaxDelay     time.Duration `json:"max_delay"`
	RateLimit    time.Duration `json:"rate_limit"`
	BurstLimit   int           `json:"burst_limit"`
	Debug        bool          `json:"debug"`
}

// Client represents a MusicBrainz API client
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// 2. Constructor and configuration

// DefaultConfig returns sensible defaults for MusicBrainz API client
func DefaultConfig() Config {
	return Config{
		Server:       DefaultServer,
		UserAgent:    defaultUserAgent,
		Timeout:      defaultTimeout,
		MaxRetries:   defaultMaxRetries,
		InitialDelay: defaultInitialDelay,
		MaxDelay:     defaultMaxDelay,
		RateLimit:    defaultRateLimit,
		BurstLimit:   defaultBurstLimit,
		Debug:        false,
	}
}

// NewClient creates a new MusicBrainz API client with default configuration
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new MusicBrainz API client with custom configuration
func NewClientWithConfig(config Config) *Client {
	config = normalizeConfig(config)
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:      config,
		rateLimiter: newLimiter(config),
	}
}

// UpdateConfig replaces the client configuration. The rate limiter is rebuilt
// so a new delay takes effect on the next request.
func (c *Client) UpdateConfig(config Config) {
	config = normalizeConfig(config)
	c.config = config
	c.httpClient.Timeout = config.Timeout
	c.rateLimiter = newLimiter(config)
}

// GetConfig returns the current client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// SetDebug enables or disables debug logging for the client
func (c *Client) SetDebug(debug bool) {
	c.config.Debug = debug
}

// 3. Core HTTP methods (private)

// makeRequest creates and executes an HTTP request with proper headers
func (c *Client) makeRequest(ctx context.Context, path string) (*http.Response, error) {
	reqURL, err := url.Parse(c.config.Server + apiPath + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// get makes a single GET request to the MusicBrainz API
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.makeRequest(ctx, path)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, &shared.HTTPError{
				StatusCode: http.StatusGatewayTimeout,
				Status:     "Gateway Timeout",
				Message:    err.Error(),
			}
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, &shared.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    message,
		}
	}

	return body, nil
}

// getWithRetry makes a GET request with retry logic
func (c *Client) getWithRetry(ctx context.Context, path string) ([]byte, error) {
	var result []byte
	var err error

	retryErr := shared.RetryWithBackoffForHTTPWithDebug(
		c.config.MaxRetries,
		c.config.InitialDelay,
		c.config.MaxDelay,
		func() error {
			result, err = c.get(ctx, path)
			return err
		},
		c.config.Debug,
	)

	if retryErr != nil {
		return nil, retryErr
	}
	return result, nil
}

// lookup fetches one entity by MBID and decodes it into out
func (c *Client) lookup(ctx context.Context, entity, mbid, inc string, out interface{}) error {
	if mbid == "" {
		return fmt.Errorf("MBID cannot be empty")
	}

	path := fmt.Sprintf("%s/%s", entity, url.PathEscape(mbid))
	if inc != "" {
		path += "?inc=" + inc
	}

	body, err := c.getWithRetry(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", entity, mbid, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s %s: %w", entity, mbid, err)
	}
	return nil
}

// 4. Public API methods

// LookupRelease fetches a release with its text representation
func (c *Client) LookupRelease(ctx context.Context, mbid string) (*Release, error) {
	var release Release
	if err := c.lookup(ctx, "release", mbid, "", &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// LookupReleaseGroup fetches a release group with its releases and aliases
func (c *Client) LookupReleaseGroup(ctx context.Context, mbid string) (*ReleaseGroup, error) {
	var group ReleaseGroup
	if err := c.lookup(ctx, "release-group", mbid, "releases+aliases", &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// LookupRecording fetches a recording with aliases and the media of every
// release it appears on
func (c *Client) LookupRecording(ctx context.Context, mbid string) (*Recording, error) {
	var recording Recording
	if err := c.lookup(ctx, "recording", mbid, "aliases+media+releases", &recording); err != nil {
		return nil, err
	}
	return &recording, nil
}

// LookupArtist fetches an artist with its aliases
func (c *Client) LookupArtist(ctx context.Context, mbid string) (*Artist, error) {
	var artist Artist
	if err := c.lookup(ctx, "artist", mbid, "aliases", &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// 5. Helper/utility functions

func normalizeConfig(config Config) Config {
	config.Server = strings.TrimRight(config.Server, "/")
	if config.Server == "" {
		config.Server = DefaultServer
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.BurstLimit < 1 {
		config.BurstLimit = 1
	}
	return config
}

func newLimiter(config Config) *rate.Limiter {
	if config.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, config.BurstLimit)
	}
	return rate.NewLimiter(rate.Every(config.RateLimit), config.BurstLimit)
}
