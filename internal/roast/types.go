// Package roast implements the roast generation pipeline: resolving the
// active profile source, fetching music signals, compiling the prompt, and
// turning the generation backend's output into a complete Result.
package roast

import (
	"net/url"

	"roastbeats/internal/session"
)

// Result is the externally visible roast contract. It is always fully
// populated: either genuine generated output or the fallback.
type Result struct {
	Headline   string `json:"headline"`
	Score      int    `json:"score"`
	RoastBody  string `json:"roast_body"`
	DatingLife string `json:"dating_life"`
}

// Fallback returns the safe substitute used whenever generation fails for
// any reason. Tests detect the fallback path by equality with this value.
func Fallback() Result {
	return Result{
		Headline:   "Basic Taste",
		Score:      0,
		RoastBody:  "The AI is speechless at your taste.",
		DatingLife: "Unknown",
	}
}

// Profile is the resolved identity for the active request.
type Profile struct {
	Identity  string
	AvatarURL string
	Source    session.Source
}

// PlaceholderAvatarURL derives a deterministic placeholder avatar for an
// identity with no profile image. No network call is made.
func PlaceholderAvatarURL(identity string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(identity)
}
