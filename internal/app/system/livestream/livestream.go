// internal/app/system/livestream/livestream.go

// Package livestream is the black-box "is this channel live" lookup
// against the Twitch Helix API. Authentication uses the OAuth2 client
// credentials (app token) flow; the token source refreshes itself.
package livestream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"
	defaultAPIURL   = "https://api.twitch.tv/helix"
)

// Client answers live-status lookups for channels by login name.
type Client struct {
	clientID string
	apiURL   string
	http     *http.Client
}

// NewClient builds a client with a self-refreshing app token.
func NewClient(clientID, clientSecret string) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     defaultTokenURL,
	}
	httpClient := cfg.Client(context.Background())
	httpClient.Timeout = 15 * time.Second
	return &Client{
		clientID: clientID,
		apiURL:   defaultAPIURL,
		http:     httpClient,
	}
}

// newWithTransport is the test seam: a plain http.Client against a
// local API endpoint, skipping the token flow.
func newWithTransport(clientID, apiURL string, httpClient *http.Client) *Client {
	return &Client{clientID: clientID, apiURL: strings.TrimRight(apiURL, "/"), http: httpClient}
}

type streamsResponse struct {
	Data []struct {
		Type string `json:"type"`
	} `json:"data"`
}

// IsLive reports whether the channel is currently streaming. An unknown
// channel is simply not live.
func (c *Client) IsLive(ctx context.Context, channel string) (bool, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return false, fmt.Errorf("channel is required")
	}

	u := c.apiURL + "/streams?user_login=" + url.QueryEscape(channel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build streams request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("streams call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var sr streamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return false, fmt.Errorf("decode streams response: %w", err)
	}
	for _, s := range sr.Data {
		if s.Type == "live" {
			return true, nil
		}
	}
	return false, nil
}
