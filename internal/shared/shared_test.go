package shared

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestIsRetryableHTTPError(t *testing.T) {
	retryable := []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusBadGateway, http.StatusGatewayTimeout}
	for _, code := range retryable {
		err := fmt.Errorf("wrapped: %w", &HTTPError{StatusCode: code})
		if !IsRetryableHTTPError(err) {
			t.Errorf("Expected %d to be retryable", code)
		}
	}

	if IsRetryableHTTPError(&HTTPError{StatusCode: http.StatusNotFound}) {
		t.Error("Expected 404 not to be retryable")
	}
	if IsRetryableHTTPError(errors.New("plain")) {
		t.Error("Expected plain errors not to be retryable")
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := RetryWithBackoffForHTTPWithDebug(5, time.Millisecond, 5*time.Millisecond, func() error {
		calls++
		return &HTTPError{StatusCode: http.StatusBadRequest}
	}, false)
	if err == nil || calls != 1 {
		t.Errorf("Expected one call and an error, got %d calls and %v", calls, err)
	}
}

func TestRetryWithBackoffGivesUp(t *testing.T) {
	calls := 0
	err := RetryWithBackoffForHTTPWithDebug(3, time.Millisecond, 2*time.Millisecond, func() error {
		calls++
		return &HTTPError{StatusCode: http.StatusServiceUnavailable}
	}, false)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected wrapped HTTPError, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestWarningCollectorConcurrent(t *testing.T) {
	wc := NewWarningCollector(true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wc.AddLookupWarning("album", fmt.Sprintf("Album %d", i%5), "HTTP 503")
		}(i)
	}
	wg.Wait()

	if wc.GetWarningCount() != 20 {
		t.Errorf("Expected 20 warnings, got %d", wc.GetWarningCount())
	}
	if len(wc.GetWarningsByType()[AlbumLookupWarning]) != 20 {
		t.Error("Expected all warnings under AlbumLookupWarning")
	}
}

func TestWarningCollectorDisabled(t *testing.T) {
	wc := NewWarningCollector(false)
	wc.AddUnreadableFileWarning("/music/a.flac", "bad header")
	if wc.HasWarnings() {
		t.Error("Expected a disabled collector to drop warnings")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("東京スカパラダイスオーケストラ", 6); got != "東京ス..." {
		t.Errorf("Unexpected truncation: %q", got)
	}
	if got := TruncateString("Kyoto", 10); got != "Kyoto" {
		t.Errorf("Expected short strings untouched, got %q", got)
	}
}
