package spotify

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	o := NewOAuth("client-id", "secret", "http://localhost:8000/callback/")

	raw := o.AuthorizeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://localhost:8000/callback/", q.Get("redirect_uri"))
	assert.Equal(t, Scopes, q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
}

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotForm url.Values
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
		}))
		defer srv.Close()

		o := NewOAuth("id", "secret", "http://localhost/callback/", WithTokenURL(srv.URL))
		token, err := o.Exchange(context.Background(), "code-abc")
		require.NoError(t, err)

		assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
		assert.Equal(t, "code-abc", gotForm.Get("code"))
		assert.Equal(t, "http://localhost/callback/", gotForm.Get("redirect_uri"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("id:secret"))
		assert.Equal(t, wantAuth, gotAuth)

		assert.Equal(t, "at-1", token.AccessToken)
		assert.Equal(t, "rt-1", token.RefreshToken)
		assert.True(t, token.Expiry.After(time.Now()))
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		o := NewOAuth("id", "secret", "http://localhost/callback/", WithTokenURL(srv.URL))
		_, err := o.Exchange(context.Background(), "bad-code")
		assert.Error(t, err)
	})

	t.Run("missing access_token is an unexpected shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type":"Bearer"}`))
		}))
		defer srv.Close()

		o := NewOAuth("id", "secret", "http://localhost/callback/", WithTokenURL(srv.URL))
		_, err := o.Exchange(context.Background(), "code")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedShape)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("keeps refresh token when not rotated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"at-2","token_type":"Bearer","expires_in":3600}`))
		}))
		defer srv.Close()

		o := NewOAuth("id", "secret", "http://localhost/callback/", WithTokenURL(srv.URL))
		token, err := o.Refresh(context.Background(), "rt-old")
		require.NoError(t, err)

		assert.Equal(t, "at-2", token.AccessToken)
		assert.Equal(t, "rt-old", token.RefreshToken)
	})

	t.Run("empty refresh token is an error", func(t *testing.T) {
		o := NewOAuth("id", "secret", "http://localhost/callback/")
		_, err := o.Refresh(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestTokenValid(t *testing.T) {
	var nilToken *Token
	assert.False(t, nilToken.Valid())
	assert.False(t, (&Token{}).Valid())
	assert.True(t, (&Token{AccessToken: "at"}).Valid())
}
