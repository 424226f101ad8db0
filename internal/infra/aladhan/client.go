// Package aladhan fetches prayer timings from the AlAdhan public API. The
// prayer service treats it as an optional alternate source and falls back to
// the local calculation whenever it fails.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// methodCodes maps registry method ids to AlAdhan numeric method codes.
// Methods without a published code fall back to the Egyptian code, matching
// the original service behavior.
var methodCodes = map[prayer.Method]int{
	prayer.MuslimWorldLeague: 3,
	prayer.Egyptian:          5,
	prayer.UmmAlQura:         4,
	prayer.Karachi:           1,
	prayer.ISNA:              2,
	prayer.Jafari:            0,
}

const fallbackMethodCode = 5

// Client calls the AlAdhan timings endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves one day's timings for a location.
func (c *Client) Fetch(ctx context.Context, loc geo.Coordinate, date time.Time, method prayer.Method) (prayer.Schedule, error) {
	code, ok := methodCodes[method]
	if !ok {
		code = fallbackMethodCode
	}

	endpoint := fmt.Sprintf("%s/timings/%s?latitude=%g&longitude=%g&method=%d",
		c.baseURL, date.Format("02-01-2006"), loc.Latitude, loc.Longitude, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("build aladhan request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("aladhan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return prayer.Schedule{}, fmt.Errorf("aladhan request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("read aladhan response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return prayer.Schedule{}, fmt.Errorf("decode aladhan response: %w", err)
	}
	if raw.Code != http.StatusOK {
		return prayer.Schedule{}, fmt.Errorf("aladhan api error: code=%d status=%s", raw.Code, raw.Status)
	}

	return scheduleFromTimings(raw.Data.Timings, loc, date, method)
}

type apiResponse struct {
	Code   int     `json:"code"`
	Status string  `json:"status"`
	Data   apiData `json:"data"`
}

type apiData struct {
	Timings timings `json:"timings"`
}

type timings struct {
	Imsak   string `json:"Imsak"`
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

func scheduleFromTimings(t timings, loc geo.Coordinate, date time.Time, method prayer.Method) (prayer.Schedule, error) {
	times := map[string]string{
		"imsak":   cleanClock(t.Imsak),
		"fajr":    cleanClock(t.Fajr),
		"sunrise": cleanClock(t.Sunrise),
		"dhuhr":   cleanClock(t.Dhuhr),
		"asr":     cleanClock(t.Asr),
		"maghrib": cleanClock(t.Maghrib),
		"isha":    cleanClock(t.Isha),
	}
	for name, value := range times {
		if value == "" {
			return prayer.Schedule{}, fmt.Errorf("aladhan response missing %s timing", name)
		}
	}

	return prayer.Schedule{
		Date:     date.Format("2006-01-02"),
		Method:   string(method),
		Location: loc,
		Times:    times,
		Source:   "aladhan_api",
	}, nil
}

// cleanClock strips timezone suffixes like "05:02 (EET)" down to "05:02".
func cleanClock(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.IndexByte(s, ' '); idx != -1 {
		s = s[:idx]
	}
	return s
}
