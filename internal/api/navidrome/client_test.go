package navidrome

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewNavidromeClient(t *testing.T) {
	client := NewNavidromeClient("http://navidrome.local:4533/", "user", "secret", nil)

	if client.URL != "http://navidrome.local:4533" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.URL)
	}
	if client.httpClient != http.DefaultClient {
		t.Error("Expected the default HTTP client")
	}
}

func TestRescanRequiresConfiguration(t *testing.T) {
	client := NewNavidromeClient("", "", "", nil)

	if err := client.Rescan(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestRescanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewNavidromeClient("http://navidrome.local:4533", "user", "secret", nil)
	if err := client.Rescan(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
