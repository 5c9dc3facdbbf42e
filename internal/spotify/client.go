// Package spotify is a minimal Spotify Web API client covering the calls the
// roast pipeline needs: the current user's identity and their ranked top
// artists and tracks. Responses are validated at the boundary; a 2xx body
// that does not match the expected schema surfaces ErrUnexpectedShape.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultAPIBaseURL = "https://api.spotify.com/v1"

// Client talks to the Spotify Web API on behalf of an authorized user.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Spotify API client.
func NewClient(log *zap.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL:    defaultAPIBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUser fetches the authorized user's profile.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.get(ctx, accessToken, "/me", nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: user profile without id", ErrUnexpectedShape)
	}
	return &user, nil
}

// TopArtists fetches the user's ranked top artists for the given window.
// Ordering is Spotify's relevance ranking and is preserved as returned.
func (c *Client) TopArtists(ctx context.Context, accessToken string, limit int, window TimeRange) ([]Artist, error) {
	var page pagedItems[Artist]
	params := topItemParams(limit, window)
	if err := c.get(ctx, accessToken, "/me/top/artists", params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// TopTracks fetches the user's ranked top tracks for the given window.
func (c *Client) TopTracks(ctx context.Context, accessToken string, limit int, window TimeRange) ([]Track, error) {
	var page pagedItems[Track]
	params := topItemParams(limit, window)
	if err := c.get(ctx, accessToken, "/me/top/tracks", params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func topItemParams(limit int, window TimeRange) url.Values {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("time_range", string(window))
	return params
}

func (c *Client) get(ctx context.Context, accessToken, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	c.log.Debug("spotify request completed",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
