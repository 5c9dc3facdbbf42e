package roast

import (
	"context"

	"roastbeats/internal/spotify"
)

// --- MockIdentityService ---

type MockIdentityService struct {
	CurrentUserFunc func(ctx context.Context, accessToken string) (*spotify.User, error)
	Calls           int
}

func (m *MockIdentityService) CurrentUser(ctx context.Context, accessToken string) (*spotify.User, error) {
	m.Calls++
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, accessToken)
	}
	return &spotify.User{ID: "u1", DisplayName: "Mock User"}, nil
}

// --- MockTopListService ---

type MockTopListService struct {
	TopArtistsFunc func(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Artist, error)
	TopTracksFunc  func(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Track, error)
	ArtistCalls    int
	TrackCalls     int
}

func (m *MockTopListService) TopArtists(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Artist, error) {
	m.ArtistCalls++
	if m.TopArtistsFunc != nil {
		return m.TopArtistsFunc(ctx, accessToken, limit, window)
	}
	return nil, nil
}

func (m *MockTopListService) TopTracks(ctx context.Context, accessToken string, limit int, window spotify.TimeRange) ([]spotify.Track, error) {
	m.TrackCalls++
	if m.TopTracksFunc != nil {
		return m.TopTracksFunc(ctx, accessToken, limit, window)
	}
	return nil, nil
}

// --- MockTextGenerator ---

type MockTextGenerator struct {
	GenerateJSONFunc func(ctx context.Context, prompt string) (string, error)
	Calls            int
	LastPrompt       string
}

func (m *MockTextGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt)
	}
	return "{}", nil
}
