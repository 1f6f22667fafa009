// Package lyric provides an API client for Honeywell Home (Lyric) thermostats
// and leak detectors.
//
// The Honeywell Home API uses OAuth2 bearer tokens in combination with a
// consumer key ("apikey") that is added to each request. Token handling is
// left to the http.Client passed to New; NewOAuth2Client builds one from a
// refresh token.
//
// Currently the following APIs are supported:
//
//	GetLocations: get all locations, including the devices registered in them
//	GetPriority:  get the rooms & accessory sensors reporting to a thermostat
package lyric

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ServerURL is the base URL of the Honeywell Home API.
const ServerURL = "https://api.honeywell.com"

// Client calls the Honeywell Home API on behalf of one API key.
type Client struct {
	// HTTPClient performs the actual requests. It must handle OAuth2
	// authentication (see NewOAuth2Client).
	HTTPClient *http.Client
	// BaseURL overrides ServerURL. Used for testing.
	BaseURL string
	apiKey  string
}

// New returns a Client that authenticates with the provided API key.
func New(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		HTTPClient: httpClient,
		BaseURL:    ServerURL,
		apiKey:     apiKey,
	}
}

// GetLocations returns all locations for the authenticated user, with the
// devices registered at each location.
func (c *Client) GetLocations(ctx context.Context) ([]Location, error) {
	return call[[]Location](ctx, c, "/v2/locations", nil)
}

// GetPriority returns the priority status of a thermostat, i.e. the rooms
// reporting to it and the accessory sensors in those rooms.
func (c *Client) GetPriority(ctx context.Context, locationID int, deviceID string) (Priority, error) {
	return call[Priority](ctx, c, "/v2/devices/thermostats/"+url.PathEscape(deviceID)+"/priority", url.Values{
		"locationId": []string{fmt.Sprintf("%d", locationID)},
	})
}

func call[T any](ctx context.Context, c *Client, endpoint string, values url.Values) (response T, err error) {
	if values == nil {
		values = make(url.Values)
	}
	values.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return response, fmt.Errorf("lyric: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("lyric: %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("lyric: %s: %s", endpoint, resp.Status)
	}
	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		err = fmt.Errorf("lyric: %s: decode: %w", endpoint, err)
	}
	return response, err
}
