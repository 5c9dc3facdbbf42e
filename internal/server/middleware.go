package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roastbeats/internal/session"
)

const sessionCookie = "roastbeats_session"

// withSession loads the caller's Session Context, creating one (and
// setting the cookie) when none exists, and hands it to the handler
// explicitly. Handlers never reach into ambient storage.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *session.Data)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.loadSession(r)
		if sess == nil {
			sess = &session.Data{ID: uuid.NewString()}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next(w, r, sess)
	}
}

func (s *Server) loadSession(r *http.Request) *session.Data {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := s.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		s.log.Warn("session load failed", zap.Error(err))
		return nil
	}
	return data
}

// saveSession persists a mutated session. A failed save is logged; the
// request proceeds so the user still gets a response.
func (s *Server) saveSession(r *http.Request, sess *session.Data) {
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.log.Error("session save failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
