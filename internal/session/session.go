// Package session holds the per-user Session Context for the roast pipeline
// and its backing stores. The pipeline never reaches into ambient storage;
// handlers load a Data value, pass its fields down explicitly, and save it
// back when mutated.
package session

import (
	"context"
	"errors"
	"time"

	"roastbeats/internal/spotify"
)

var (
	// ErrInvalidStoreType is returned for an unknown store driver.
	ErrInvalidStoreType = errors.New("invalid session store type")

	// ErrInvalidConfig is returned when a driver's required options are missing.
	ErrInvalidConfig = errors.New("invalid session store config")
)

// Source identifies where the roast data comes from.
type Source string

const (
	// SourceAuthorized pulls signals from Spotify via the delegated token.
	// This is the default when a session carries no explicit source.
	SourceAuthorized Source = "authorized"

	// SourceManual uses the user's typed-in music description.
	SourceManual Source = "manual"
)

// ManualData is the user-typed profile for the manual flow.
type ManualData struct {
	Username   string `json:"username"`
	MusicInput string `json:"music_input"`
}

// Data is one user's Session Context.
type Data struct {
	ID        string         `json:"id"`
	Source    Source         `json:"roast_source,omitempty"`
	Manual    *ManualData    `json:"manual_data,omitempty"`
	Token     *spotify.Token `json:"auth_token,omitempty"`
	AuthState string         `json:"auth_state,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ResolvedSource returns the session's source, defaulting to authorized.
func (d *Data) ResolvedSource() Source {
	if d != nil && d.Source == SourceManual {
		return SourceManual
	}
	return SourceAuthorized
}

// Store persists Session Context records keyed by session ID.
type Store interface {
	// Get returns the session for id, or (nil, nil) when none exists.
	Get(ctx context.Context, id string) (*Data, error)
	// Save creates or replaces the session.
	Save(ctx context.Context, data *Data) error
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases store resources.
	Close() error
}

// StoreType selects a session store driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// NewStore creates a session store of the given type.
// The redis driver requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(), nil

	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		ttl := cfg.ttl
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		return &redisStore{client: cfg.redisClient, ttl: ttl}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
