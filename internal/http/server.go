package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"farmdash/internal/core"
	"farmdash/internal/events"
	"farmdash/internal/export"
	"farmdash/internal/farmapi"
	"farmdash/internal/log"
	"farmdash/internal/report"
	"farmdash/internal/session"
	appweb "farmdash/web"
)

// EventPublisher is the slice of the events client the server needs.
// Publishing is best effort; failures never fail the request.
type EventPublisher interface {
	PublishProjectCreated(ctx context.Context, p core.Project) error
	PublishRecordCreated(ctx context.Context, userID int64, r core.FinancialRecord) error
}

var _ EventPublisher = (*events.Client)(nil)

// Deps collects the server's collaborators. Publisher and Exporter are
// optional; nil disables the feature.
type Deps struct {
	Sessions  *session.Store
	Backend   farmapi.Backend
	Publisher EventPublisher
	Exporter  export.Exporter
	Logger    *log.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	logger    *log.Logger

	sessions  *session.Store
	backend   farmapi.Backend
	publisher EventPublisher
	exporter  export.Exporter
	reports   *report.Generator

	rateLimiter *rateLimiter
	submitGroup singleflight.Group

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger:      deps.Logger.WithComponent(log.ComponentHTTP),
		sessions:    deps.Sessions,
		backend:     deps.Backend,
		publisher:   deps.Publisher,
		exporter:    deps.Exporter,
		reports:     report.NewGenerator(),
		rateLimiter: newRateLimiter(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err.Error())
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /login", s.withSecurityHeaders(s.handleLoginPage))
	mux.HandleFunc("POST /login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("GET /signup", s.withSecurityHeaders(s.handleSignupPage))
	mux.HandleFunc("POST /signup", s.withSecurityHeaders(s.handleSignup))
	mux.HandleFunc("POST /logout", s.withSecurityHeaders(s.handleLogout))

	mux.HandleFunc("GET /projects", s.withSecurityHeaders(s.requireSession(s.handleProjectsPage)))
	mux.HandleFunc("GET /ui/projects", s.withSecurityHeaders(s.requireSession(s.handleProjectList)))
	mux.HandleFunc("POST /projects", s.withSecurityHeaders(s.requireSession(s.handleCreateProject)))

	mux.HandleFunc("GET /projects/{id}", s.withSecurityHeaders(s.requireSession(s.handleProjectPage)))
	mux.HandleFunc("GET /projects/{id}/records", s.withSecurityHeaders(s.requireSession(s.handleRecordList)))
	mux.HandleFunc("POST /projects/{id}/records", s.withSecurityHeaders(s.requireSession(s.handleCreateRecord)))
	mux.HandleFunc("GET /projects/{id}/productivity", s.withSecurityHeaders(s.requireSession(s.handleProductivity)))
	mux.HandleFunc("GET /projects/{id}/report.png", s.withSecurityHeaders(s.requireSession(s.handleReportPNG)))
	mux.HandleFunc("POST /projects/{id}/export", s.withSecurityHeaders(s.requireSession(s.handleExport)))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// handleIndex sends authenticated browsers to the project list and
// everyone else to the login page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if _, ok := s.sessions.Get(cookie.Value); ok {
			http.Redirect(w, r, "/projects", http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes a named template, logging failures.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		InternalServerError("Templates unavailable").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template render failed",
			"template", name,
			log.FieldError, err.Error())
	}
}
