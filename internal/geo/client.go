package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultKeyedBaseURL   = "https://api.ipapi.com/api/"
	DefaultKeylessBaseURL = "https://ipapi.co/"
	DefaultTimeout        = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// Locator resolves an IP address to coordinates. An empty ip asks the
// service to locate the caller.
type Locator interface {
	Locate(ctx context.Context, ip string) (*Result, error)
}

type ClientConfig struct {
	APIKey         string
	KeyedBaseURL   string
	KeylessBaseURL string
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// Client talks to ipapi.com when an access key is configured and to the
// keyless ipapi.co endpoint otherwise.
type Client struct {
	apiKey         string
	keyedBaseURL   string
	keylessBaseURL string
	httpClient     *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.KeyedBaseURL == "" {
		cfg.KeyedBaseURL = DefaultKeyedBaseURL
	}
	if cfg.KeylessBaseURL == "" {
		cfg.KeylessBaseURL = DefaultKeylessBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		apiKey:         cfg.APIKey,
		keyedBaseURL:   withTrailingSlash(cfg.KeyedBaseURL),
		keylessBaseURL: withTrailingSlash(cfg.KeylessBaseURL),
		httpClient:     httpClient,
	}
}

func (c *Client) Keyed() bool {
	return c.apiKey != ""
}

// Endpoint builds the lookup URL for ip.
func (c *Client) Endpoint(ip string) string {
	if c.Keyed() {
		target := "check"
		if ip != "" {
			target = url.PathEscape(ip)
		}
		return c.keyedBaseURL + target + "?access_key=" + url.QueryEscape(c.apiKey)
	}

	if ip == "" {
		return c.keylessBaseURL + "json/"
	}
	return c.keylessBaseURL + url.PathEscape(ip) + "/json/"
}

// RedactedEndpoint is Endpoint with the access key masked, for logs.
func (c *Client) RedactedEndpoint(ip string) string {
	endpoint := c.Endpoint(ip)
	if c.apiKey == "" {
		return endpoint
	}
	return strings.Replace(endpoint, url.QueryEscape(c.apiKey), "***", 1)
}

func (c *Client) Locate(ctx context.Context, ip string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(ip), nil)
	if err != nil {
		return nil, networkFailure("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkFailure("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, networkFailure("failed to read response body", err)
	}

	return decodeResponse(resp.StatusCode, body)
}

// apiResponse covers both providers: ipapi.co reports failures as
// {"error": true, "reason": ...}, ipapi.com as
// {"success": false, "error": {"code": ..., "info": ...}}.
type apiResponse struct {
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	City        string          `json:"city"`
	Region      string          `json:"region"`
	RegionName  string          `json:"region_name"`
	Country     string          `json:"country"`
	CountryName string          `json:"country_name"`
	Timezone    json.RawMessage `json:"timezone"`

	Error   json.RawMessage `json:"error"`
	Reason  string          `json:"reason"`
	Message string          `json:"message"`
}

type apiErrorDetail struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func decodeResponse(status int, body []byte) (*Result, error) {
	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if status < 200 || status > 299 {
			return nil, upstreamError(fmt.Sprintf("HTTP %d", status))
		}
		return nil, malformedResponse("response is not valid JSON", err)
	}

	if detail, failed := payload.errorDetail(); failed {
		return nil, upstreamError(detail)
	}
	if status < 200 || status > 299 {
		return nil, upstreamError(fmt.Sprintf("HTTP %d", status))
	}

	if payload.Latitude == nil || payload.Longitude == nil {
		return nil, malformedResponse("response is missing latitude or longitude", nil)
	}

	result := &Result{
		Latitude:    *payload.Latitude,
		Longitude:   *payload.Longitude,
		City:        payload.City,
		RegionName:  firstNonEmpty(payload.RegionName, payload.Region),
		CountryName: firstNonEmpty(payload.CountryName, payload.Country),
		TimeZone:    payload.timezoneID(),
	}
	normalizeResult(result)
	return result, nil
}

func (p apiResponse) errorDetail() (string, bool) {
	raw := bytes.TrimSpace(p.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return "", false
	}

	var detail apiErrorDetail
	if raw[0] == '{' {
		_ = json.Unmarshal(raw, &detail)
	}

	return firstNonEmpty(detail.Info, p.Reason, p.Message, detail.Type, "Unknown error"), true
}

// timezoneID accepts ipapi.co's plain string and ipapi.com's {"id": ...}
// object (only present on paid plans).
func (p apiResponse) timezoneID() string {
	raw := bytes.TrimSpace(p.Timezone)
	if len(raw) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
