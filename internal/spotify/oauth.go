package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthURL  = "https://accounts.spotify.com/authorize"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// Scopes the roast pipeline needs: profile identity plus top-item reads.
	Scopes = "user-top-read user-read-private user-read-recently-played"
)

// Token holds the delegated-authorization credential bundle.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	Expiry       time.Time `json:"expiry"`
}

// Valid reports whether the token carries a usable access token.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// OAuth implements the Spotify authorization-code flow.
type OAuth struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	tokenURL     string
	httpClient   *http.Client
}

// OAuthOption customizes an OAuth helper.
type OAuthOption func(*OAuth)

// WithAuthURL overrides the authorization endpoint. Used in tests.
func WithAuthURL(u string) OAuthOption {
	return func(o *OAuth) { o.authURL = u }
}

// WithTokenURL overrides the token endpoint. Used in tests.
func WithTokenURL(u string) OAuthOption {
	return func(o *OAuth) { o.tokenURL = u }
}

// WithOAuthHTTPClient overrides the HTTP client.
func WithOAuthHTTPClient(c *http.Client) OAuthOption {
	return func(o *OAuth) { o.httpClient = c }
}

// NewOAuth creates an OAuth helper for the given application credentials.
func NewOAuth(clientID, clientSecret, redirectURI string, opts ...OAuthOption) *OAuth {
	o := &OAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authURL:      defaultAuthURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AuthorizeURL builds the URL the user is redirected to for consent.
func (o *OAuth) AuthorizeURL(state string) string {
	u, err := url.Parse(o.authURL)
	if err != nil {
		return o.authURL
	}
	q := u.Query()
	q.Set("client_id", o.clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", o.redirectURI)
	q.Set("scope", Scopes)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Exchange trades an authorization code for a token bundle.
func (o *OAuth) Exchange(ctx context.Context, code string) (*Token, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", o.redirectURI)

	return o.tokenRequest(ctx, data)
}

// Refresh obtains a fresh access token using a refresh token.
func (o *OAuth) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token available")
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	token, err := o.tokenRequest(ctx, data)
	if err != nil {
		return nil, err
	}
	// Spotify may omit the refresh token when it is not rotated.
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}

func (o *OAuth) tokenRequest(ctx context.Context, data url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", o.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basicCredentials(o.clientID, o.clientSecret))

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response without access_token", ErrUnexpectedShape)
	}

	token.Expiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return &token, nil
}

func basicCredentials(id, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(id + ":" + secret))
}
