package spotify

import "errors"

// ErrUnexpectedShape marks a well-formed transport response whose body did
// not match the expected schema. Distinct from transport failures so callers
// can tell a broken network from a broken contract.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// TimeRange selects the historical window for top-item queries.
type TimeRange string

const (
	TimeRangeShort  TimeRange = "short_term"
	TimeRangeMedium TimeRange = "medium_term"
	TimeRangeLong   TimeRange = "long_term"
)

// User is the streaming-identity record.
type User struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Images      []Image `json:"images"`
}

// Image is a profile or cover image reference.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist is a ranked artist entry from the top-artists query.
type Artist struct {
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

// Track is a ranked track entry from the top-tracks query.
type Track struct {
	Name       string       `json:"name"`
	Artists    []TrackCredit `json:"artists"`
	Popularity int          `json:"popularity"`
}

// TrackCredit names an artist credited on a track.
type TrackCredit struct {
	Name string `json:"name"`
}

// pagedItems is the envelope the top-item endpoints return.
type pagedItems[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
