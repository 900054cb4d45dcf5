package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when no client id or secret is set
var ErrMissingCredentials = errors.New("spotify client id and secret are required")

// SpotifyClient holds the spotify client and other required fields
type SpotifyClient struct {
	ID     string
	Secret string
	Market string

	mu     sync.Mutex
	client *spotify.Client
}

// NewSpotifyClient creates a new spotify client
func NewSpotifyClient(id, secret string) *SpotifyClient {
	return &SpotifyClient{
		ID:     id,
		Secret: secret,
		Market: "US",
	}
}

// Authenticate authenticates the client with the spotify api
func (s *SpotifyClient) Authenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.authenticated(ctx)
	return err
}

func (s *SpotifyClient) authenticated(ctx context.Context) (*spotify.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	if s.ID == "" || s.Secret == "" {
		return nil, ErrMissingCredentials
	}

	config := &clientcredentials.Config{
		ClientID:     s.ID,
		ClientSecret: s.Secret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get spotify token: %w", err)
	}

	// The token source refreshes itself for later requests
	httpClient := spotifyauth.New().Client(context.Background(), token)
	s.client = spotify.New(httpClient)
	return s.client, nil
}

// TopArtistName returns the name of the best matching Spotify artist, or ""
// when the search found nothing.
func (s *SpotifyClient) TopArtistName(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	s.mu.Lock()
	client, err := s.authenticated(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	result, err := client.Search(ctx, query, spotify.SearchTypeArtist, spotify.Limit(1), spotify.Market(s.Market))
	if err != nil {
		return "", fmt.Errorf("spotify search for %q failed: %w", query, err)
	}
	if result.Artists == nil || len(result.Artists.Artists) == 0 {
		return "", nil
	}
	return result.Artists.Artists[0].Name, nil
}
