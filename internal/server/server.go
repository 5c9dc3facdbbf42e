// Package server is the HTTP surface: the landing and manual-input pages,
// the delegated-authorization redirect/callback pair, the fast roast shell,
// and the slow result endpoint the shell polls.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"roastbeats/internal/roast"
	"roastbeats/internal/session"
	"roastbeats/internal/spotify"
	"roastbeats/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// OAuthService is the authorization-handshake collaborator.
type OAuthService interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*spotify.Token, error)
}

// Archiver records generated roasts. Optional; a nil archiver disables
// archiving.
type Archiver interface {
	Save(ctx context.Context, rec *store.Record) error
}

// Deps are the collaborators the server composes.
type Deps struct {
	Sessions  session.Store
	OAuth     OAuthService
	Resolver  *roast.Resolver
	Signals   *roast.SignalFetcher
	Generator *roast.Generator
	Archive   Archiver
	Log       *zap.Logger
}

// Server routes requests to the roast pipeline.
type Server struct {
	sessions  session.Store
	oauth     OAuthService
	resolver  *roast.Resolver
	signals   *roast.SignalFetcher
	generator *roast.Generator
	archive   Archiver
	log       *zap.Logger
	templates *template.Template
}

// New creates a Server.
func New(deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		sessions:  deps.Sessions,
		oauth:     deps.OAuth,
		resolver:  deps.Resolver,
		signals:   deps.Signals,
		generator: deps.Generator,
		archive:   deps.Archive,
		log:       deps.Log,
		templates: templates,
	}, nil
}

// Handler returns the route table. Unregistered paths fall through to the
// root handler, which 404s anything that is not exactly "/".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login/", s.withSession(s.handleLogin))
	mux.HandleFunc("/callback/", s.withSession(s.handleCallback))
	mux.HandleFunc("/manual/", s.withSession(s.handleManual))
	mux.HandleFunc("/roast/", s.withSession(s.handleRoastShell))
	mux.HandleFunc("/api/get_roast_data/", s.withSession(s.handleRoastData))
	return mux
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}
