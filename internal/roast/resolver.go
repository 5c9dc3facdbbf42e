package roast

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"roastbeats/internal/session"
	"roastbeats/internal/spotify"
)

// ErrNotAuthenticated signals that the authorized flow has no usable
// credential. Callers redirect to the entry page; it is never an error
// payload.
var ErrNotAuthenticated = errors.New("not authenticated")

// IdentityService is the streaming-identity collaborator.
type IdentityService interface {
	CurrentUser(ctx context.Context, accessToken string) (*spotify.User, error)
}

// Resolver decides whether the request is backed by manual input or a
// delegated-authorization session and extracts the canonical identity.
type Resolver struct {
	identity IdentityService
	log      *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(identity IdentityService, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{identity: identity, log: log}
}

// Resolve returns the active profile for the session. The manual branch
// never fails; a missing manual record resolves to Anonymous. The
// authorized branch performs exactly one identity lookup, and any failure
// there is reported as ErrNotAuthenticated so the caller redirects instead
// of rendering a partial result.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Data) (Profile, error) {
	if sess.ResolvedSource() == session.SourceManual {
		identity := "Anonymous"
		if sess != nil && sess.Manual != nil && sess.Manual.Username != "" {
			identity = sess.Manual.Username
		}
		return Profile{
			Identity:  identity,
			AvatarURL: PlaceholderAvatarURL(identity),
			Source:    session.SourceManual,
		}, nil
	}

	if sess == nil || !sess.Token.Valid() {
		return Profile{}, ErrNotAuthenticated
	}

	user, err := r.identity.CurrentUser(ctx, sess.Token.AccessToken)
	if err != nil {
		r.log.Warn("identity lookup failed", zap.Error(err))
		return Profile{}, ErrNotAuthenticated
	}

	avatarURL := PlaceholderAvatarURL(user.DisplayName)
	if len(user.Images) > 0 && user.Images[0].URL != "" {
		avatarURL = user.Images[0].URL
	}

	return Profile{
		Identity:  user.DisplayName,
		AvatarURL: avatarURL,
		Source:    session.SourceAuthorized,
	}, nil
}
