package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrUnsupportedScheme = errors.New("metadata URI must be http or https")
	ErrBadStatus         = errors.New("metadata host returned a non-200 status")
)

// AssetMetadata is the off-chain description an asset URI resolves to.
type AssetMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Client resolves asset URIs against their metadata hosts. It is consumed by
// reporting endpoints only and never sits on the settlement path.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Resolve(ctx context.Context, uri string) (AssetMetadata, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return AssetMetadata{}, fmt.Errorf("url.Parse -> %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return AssetMetadata{}, ErrUnsupportedScheme
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return AssetMetadata{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AssetMetadata{}, fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AssetMetadata{}, fmt.Errorf("%w: %v", ErrBadStatus, resp.StatusCode)
	}

	var meta AssetMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return AssetMetadata{}, fmt.Errorf("json.Decode -> %w", err)
	}

	return meta, nil
}
