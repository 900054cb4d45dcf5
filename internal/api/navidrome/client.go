package navidrome

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	subsonic "github.com/delucks/go-subsonic"
)

const clientName = "alias-resolver"

// ErrNotConfigured is returned when no server URL or username is set
var ErrNotConfigured = errors.New("navidrome is not configured")

// NavidromeClient asks a Navidrome server to rescan its library after tags
// were rewritten.
type NavidromeClient struct {
	URL      string
	Username string
	Password string

	mu            sync.Mutex
	httpClient    *http.Client
	client        subsonic.Client
	authenticated bool
}

// NewNavidromeClient creates a new navidrome client. A nil httpClient uses
// http.DefaultClient.
func NewNavidromeClient(url, username, password string, httpClient *http.Client) *NavidromeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NavidromeClient{
		URL:        strings.TrimRight(url, "/"),
		Username:   username,
		Password:   password,
		httpClient: httpClient,
	}
}

// Authenticate authenticates the client with the navidrome api
func (n *NavidromeClient) Authenticate() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.authenticate()
}

func (n *NavidromeClient) authenticate() error {
	if n.URL == "" || n.Username == "" {
		return ErrNotConfigured
	}
	if n.authenticated {
		return nil
	}

	n.client = subsonic.Client{
		Client:       n.httpClient,
		BaseUrl:      n.URL,
		User:         n.Username,
		ClientName:   clientName,
		PasswordAuth: true,
	}
	if err := n.client.Authenticate(n.Password); err != nil {
		return fmt.Errorf("failed to authenticate with navidrome: %w", err)
	}
	n.authenticated = true
	return nil
}

// Rescan starts a library scan so the server picks up the rewritten tags
func (n *NavidromeClient) Rescan(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.authenticate(); err != nil {
		return err
	}
	if _, err := n.client.StartScan(); err != nil {
		return fmt.Errorf("failed to start navidrome scan: %w", err)
	}
	return nil
}
