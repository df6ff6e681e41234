// Package ipinfo resolves connecting addresses to countries through the
// ipinfo.io lite API.
package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradutor/internal/domain"
	"tradutor/internal/ports/output"
)

const baseURL = "https://api.ipinfo.io/lite"

var _ output.Geolocator = (*Client)(nil)

// Client is a thin ipinfo.io client. Without a token every Lookup returns
// domain.ErrGeolocationDisabled.
type Client struct {
	token      string
	httpClient *http.Client
}

func New(token string) *Client {
	return &Client{
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup resolves ip to a country code. Private and loopback addresses are
// looked up as "me" (the server's own address), matching how players on a
// LAN appear.
func (c *Client) Lookup(ctx context.Context, ip string) (output.GeoResult, error) {
	if c.token == "" {
		return output.GeoResult{}, domain.ErrGeolocationDisabled
	}

	endpoint := c.buildURL(sanitizeIP(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return output.GeoResult{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return output.GeoResult{}, fmt.Errorf("ipinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return output.GeoResult{}, fmt.Errorf("ipinfo status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return output.GeoResult{}, fmt.Errorf("read response: %w", err)
	}

	var parsed struct {
		IP          string `json:"ip"`
		CountryCode string `json:"country_code"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return output.GeoResult{}, fmt.Errorf("ipinfo parse: %w", err)
	}
	if strings.TrimSpace(parsed.CountryCode) == "" {
		return output.GeoResult{}, fmt.Errorf("ipinfo response missing country code")
	}
	return output.GeoResult{
		IP:          strings.TrimSpace(parsed.IP),
		CountryCode: strings.TrimSpace(parsed.CountryCode),
	}, nil
}

func (c *Client) buildURL(ip string) string {
	if ip == "" {
		return baseURL + "/me?token=" + url.QueryEscape(c.token)
	}
	return baseURL + "/" + url.PathEscape(ip) + "?token=" + url.QueryEscape(c.token)
}

// sanitizeIP returns "" for addresses the public API cannot resolve.
func sanitizeIP(ip string) string {
	value := strings.TrimSpace(ip)
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return ""
	}
	return parsed.String()
}
