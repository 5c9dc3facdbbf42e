package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roastbeats/internal/roast"
	"roastbeats/internal/session"
	"roastbeats/internal/store"
)

// handleIndex renders the landing page and 404s every unregistered path
// that fell through to the root pattern.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "index.html", nil)
}

// handleLogin sends the user to the streaming service's consent page.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, sess *session.Data) {
	state := uuid.NewString()
	sess.AuthState = state
	s.saveSession(r, sess)

	http.Redirect(w, r, s.oauth.AuthorizeURL(state), http.StatusFound)
}

// handleCallback exchanges the authorization code for a token bundle and
// marks the session as authorized. Every failure path lands back on the
// entry page.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request, sess *session.Data) {
	q := r.URL.Query()
	code := q.Get("code")

	if code == "" || q.Get("error") != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if state := q.Get("state"); state == "" || state != sess.AuthState {
		s.log.Warn("callback state mismatch")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		s.log.Warn("code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sess.Token = token
	sess.Source = session.SourceAuthorized
	sess.AuthState = ""
	s.saveSession(r, sess)

	http.Redirect(w, r, "/roast/", http.StatusFound)
}

// handleManual renders the input form on GET and records the typed profile
// on POST.
func (s *Server) handleManual(w http.ResponseWriter, r *http.Request, sess *session.Data) {
	if r.Method != http.MethodPost {
		s.render(w, "manual.html", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	if username == "" {
		username = "Anonymous"
	}

	sess.Source = session.SourceManual
	sess.Manual = &session.ManualData{
		Username:   username,
		MusicInput: r.PostFormValue("music_taste"),
	}
	s.saveSession(r, sess)

	http.Redirect(w, r, "/roast/", http.StatusFound)
}

// shellView is the data the roast shell template renders.
type shellView struct {
	Username     string
	Image        string
	TriggerFetch bool
}

// handleRoastShell resolves the profile and renders immediately. It never
// touches the signal fetcher or the generation backend; the page it
// renders polls the result endpoint for the slow part.
func (s *Server) handleRoastShell(w http.ResponseWriter, r *http.Request, sess *session.Data) {
	profile, err := s.resolver.Resolve(r.Context(), sess)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.render(w, "roast.html", shellView{
		Username:     profile.Identity,
		Image:        profile.AvatarURL,
		TriggerFetch: true,
	})
}

// handleRoastData runs the full fetch-and-generate pipeline. Its contract
// is always 200 with a complete Roast Result body: internal failures
// substitute the fallback, never an error status.
func (s *Server) handleRoastData(w http.ResponseWriter, r *http.Request, sess *session.Data) {
	result := s.buildRoast(r, sess)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("failed to encode roast result", zap.Error(err))
	}
}

func (s *Server) buildRoast(r *http.Request, sess *session.Data) roast.Result {
	ctx := r.Context()

	profile, err := s.resolver.Resolve(ctx, sess)
	if err != nil {
		s.log.Warn("profile resolution failed, using fallback", zap.Error(err))
		return roast.Fallback()
	}

	signal, err := s.signals.Fetch(ctx, sess)
	if err != nil {
		s.log.Warn("signal fetch failed, using fallback", zap.Error(err))
		return roast.Fallback()
	}

	result := s.generator.Generate(ctx, profile.Identity, signal)

	if s.archive != nil && result != roast.Fallback() {
		rec := &store.Record{
			Username:        profile.Identity,
			ProfileImageURL: profile.AvatarURL,
			Headline:        result.Headline,
			Score:           result.Score,
			RoastBody:       result.RoastBody,
			DatingLife:      result.DatingLife,
		}
		if err := s.archive.Save(ctx, rec); err != nil {
			s.log.Warn("failed to archive roast", zap.Error(err))
		}
	}

	return result
}
