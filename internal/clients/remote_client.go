package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"catalog-service/internal/importer"
)

// maxDocumentSize caps remote and local JSON documents
const maxDocumentSize = 10 << 20

// RemoteClient reads JSON documents from http(s) URLs or local files
type RemoteClient struct {
	httpClient *http.Client
}

// NewRemoteClient creates a client whose requests time out after timeout
func NewRemoteClient(timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsRemote reports whether location is an http(s) URL
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Read returns the raw document at location
func (c *RemoteClient) Read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("empty location")
	}
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", location, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// FetchJSON reads and decodes the JSON document at location. Numbers are
// kept as json.Number.
func (c *RemoteClient) FetchJSON(ctx context.Context, location string) (any, error) {
	data, err := c.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	return importer.DecodeJSON(bytes.NewReader(data))
}
