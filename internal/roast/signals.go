package roast

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roastbeats/internal/session"
	"roastbeats/internal/spotify"
)

// topLimit bounds both Spotify top-item queries.
const topLimit = 10

// TopListService provides the ranked listening signals.
type TopListService interface {
	TopArtists(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Artist, error)
	TopTracks(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Track, error)
}

// SignalFetcher builds the signal text for the prompt: raw user input in
// the manual case, ranked top artists and tracks in the authorized case.
type SignalFetcher struct {
	tops TopListService
	log  *zap.Logger
}

// NewSignalFetcher creates a SignalFetcher.
func NewSignalFetcher(tops TopListService, log *zap.Logger) *SignalFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &SignalFetcher{tops: tops, log: log}
}

// Fetch returns the signal text for the session. The authorized branch
// issues the two top-item queries concurrently and joins before returning;
// shorter result lists are used as-is, with no padding. Any transport or
// authorization failure propagates as a single error with no retries.
func (f *SignalFetcher) Fetch(ctx context.Context, sess *session.Data) (string, error) {
	if sess.ResolvedSource() == session.SourceManual {
		if sess == nil || sess.Manual == nil {
			return "", nil
		}
		return sess.Manual.MusicInput, nil
	}

	if sess == nil || !sess.Token.Valid() {
		return "", fmt.Errorf("fetch signals: no access token")
	}
	accessToken := sess.Token.AccessToken

	var (
		artists []spotify.Artist
		tracks  []spotify.Track
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		artists, err = f.tops.TopArtists(gctx, accessToken, topLimit, spotify.TimeRangeMedium)
		return err
	})
	g.Go(func() error {
		var err error
		tracks, err = f.tops.TopTracks(gctx, accessToken, topLimit, spotify.TimeRangeShort)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("fetch signals: %w", err)
	}

	artistNames := make([]string, 0, len(artists))
	for _, a := range artists {
		artistNames = append(artistNames, a.Name)
	}
	trackNames := make([]string, 0, len(tracks))
	for _, t := range tracks {
		trackNames = append(trackNames, t.Name)
	}

	f.log.Debug("fetched listening signals",
		zap.Int("artists", len(artistNames)),
		zap.Int("tracks", len(trackNames)))

	return fmt.Sprintf("Top artists: %s; Top tracks: %s",
		strings.Join(artistNames, ", "),
		strings.Join(trackNames, ", ")), nil
}
