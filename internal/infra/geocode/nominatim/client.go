// Package nominatim reverse-geocodes coordinates through the OpenStreetMap
// Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves country names for coordinates.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Nominatim client. Nominatim's usage policy requires an
// identifying User-Agent on every request.
func NewClient(baseURL, userAgent string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "IslamStation/1.0"
	}
	return &Client{
		baseURL:   strings.TrimRight(url, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// CountryName returns the country containing the coordinates, or an error
// the caller is expected to treat as "Unknown".
func (c *Client) CountryName(ctx context.Context, loc geo.Coordinate) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%g&lon=%g&format=json", c.baseURL, loc.Latitude, loc.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("reverse geocode error: status=%d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read reverse geocode response: %w", err)
	}

	var raw struct {
		Address struct {
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	if raw.Address.Country == "" {
		return "", fmt.Errorf("reverse geocode returned no country")
	}
	return raw.Address.Country, nil
}
