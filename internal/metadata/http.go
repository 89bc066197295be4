// file: internal/metadata/http.go
// version: 1.0.0
// guid: 34e04d8d-7655-4605-85b4-f9a32739ccaa

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "isbn-renamer/1.0 (+https://github.com/jdfalk/isbn-renamer)"
)

// ClientOptions configures an HTTP metadata client
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func (o ClientOptions) withDefaults(baseURL string) ClientOptions {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	return o
}

// getJSON issues a GET and decodes a 200 response into target.
// A 404 maps to ErrNotFound.
func getJSON(ctx context.Context, client *http.Client, userAgent, service, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", service, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API returned status %d", service, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", service, err)
	}
	return nil
}

var yearRegex = regexp.MustCompile(`\b(\d{4})\b`)

// extractYear returns the first four-digit run in a free-form publish date
// ("1994", "October 31, 1994", "1994-10-31").
func extractYear(date string) string {
	if m := yearRegex.FindStringSubmatch(date); m != nil {
		return m[1]
	}
	return ""
}
