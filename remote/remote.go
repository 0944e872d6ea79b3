// Package remote contains the http plumbing shared by market data providers:
// a JSON GET helper, and a disk cache with daily expiry.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request of clients built by NewClient.
const DefaultTimeout = 30 * time.Second

// StatusError is returned by GetJSON when the server answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %s: %s", e.URL, e.Status)
}

// NewClient returns an http.Client with DefaultTimeout.
// If cacheDir is not empty, responses are cached on disk in that directory for the day.
func NewClient(cacheDir string) *http.Client {
	client := &http.Client{Timeout: DefaultTimeout}
	if cacheDir != "" {
		client.Transport = &DiskCache{Base: http.DefaultTransport, Dir: cacheDir}
	}
	return client
}

// GetJSON performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
//
// Responses with a status other than 2xx are returned as *StatusError.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// some market data endpoints reject the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; relperf)")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        resp.Request.URL.Host + resp.Request.URL.Path,
			Body:       body,
		}
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("unmarshal response from %s: %w", resp.Request.URL.Host+resp.Request.URL.Path, err)
	}
	return nil
}
