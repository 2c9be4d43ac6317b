// Package bookingapi fetches hotel booking-option details from the third-party
// property endpoint referenced by a hotel search result's detail link.
package bookingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// maxPayloadBytes bounds the detail payload read into memory.
const maxPayloadBytes = 4 << 20

// Client performs detail lookups over HTTP.
type Client struct {
	http    *http.Client
	apiKey  string
	keyHost *url.URL // scheme and host the key may be sent to
}

// NewClient returns a Client. apiKey is appended as the api_key query
// parameter only to requests whose scheme and host match providerURL; links
// on any other host are fetched without it. An empty or unparsable
// providerURL means the key is never sent. timeout bounds each request.
func NewClient(providerURL, apiKey string, timeout time.Duration) *Client {
	c := &Client{
		http:   &http.Client{Timeout: timeout},
		apiKey: apiKey,
	}
	if u, err := url.Parse(providerURL); err == nil && u.Host != "" {
		c.keyHost = u
	}
	return c
}

// sendsKeyTo reports whether the API key belongs on a request to u.
func (c *Client) sendsKeyTo(u *url.URL) bool {
	return c.apiKey != "" && c.keyHost != nil &&
		strings.EqualFold(u.Scheme, c.keyHost.Scheme) &&
		strings.EqualFold(u.Host, c.keyHost.Host)
}

// Fetch GETs detailLink and returns its JSON body.
// Every failure, including a non-2xx status or a non-JSON body, wraps
// domain.ErrExternalFetch.
func (c *Client) Fetch(ctx context.Context, detailLink string) (json.RawMessage, error) {
	u, err := url.Parse(detailLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: invalid detail link %q", domain.ErrExternalFetch, detailLink)
	}
	if c.sendsKeyTo(u) {
		q := u.Query()
		q.Set("api_key", c.apiKey)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: %v", domain.ErrExternalFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: %v", domain.ErrExternalFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: read body: %v", domain.ErrExternalFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: status %d", domain.ErrExternalFetch, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("bookingapi.Client.Fetch: %w: response is not JSON", domain.ErrExternalFetch)
	}
	return json.RawMessage(body), nil
}
