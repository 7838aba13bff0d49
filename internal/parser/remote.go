package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// RemoteConfig holds optional credentials for fetching flow definitions from
// an HTTP(S) endpoint, e.g. a metadata export served by an internal tool.
type RemoteConfig struct {
	Username string
	Password string
}

// IsRemote reports whether the input argument should be fetched over HTTP
// rather than read from disk.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// FetchDefinition retrieves a flow definition document from an HTTP(S)
// endpoint with retries. The caller decides how to parse the returned bytes.
func FetchDefinition(ctx context.Context, url string, config *RemoteConfig) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if config != nil && config.Username != "" && config.Password != "" {
		req.SetBasicAuth(config.Username, config.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flow definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch flow definition (status %d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
