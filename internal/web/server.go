package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/contact"
	"github.com/17okk-xie/portfolio/internal/media"
	webembed "github.com/17okk-xie/portfolio/web"
)

// Revocations records and checks ended upload sessions.
type Revocations interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Deps are the services the site is built on.
type Deps struct {
	Catalog        *catalog.Store
	Media          media.Store
	Contact        *contact.Service
	PIN            *auth.PIN
	JWTSecret      string
	Revocations    Revocations
	MaxUploadBytes int64
	SecureCookies  bool
	Logger         *slog.Logger
}

// Server holds all dependencies for page handlers.
type Server struct {
	Deps
	Templates *Templates
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(d Deps) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = catalog.MaxMediaSize
	}

	s := &Server{Deps: d, Templates: templates}

	mux := http.NewServeMux()
	session := s.RequireSession

	// Static assets and uploaded media.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.HandleFunc("GET /media/{key}", s.MediaGet)

	// Public pages.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /projects", s.ProjectsPage)
	mux.HandleFunc("GET /skills", s.SkillsPage)
	mux.HandleFunc("GET /contact", s.ContactPage)
	mux.HandleFunc("POST /contact", s.ContactSubmit)

	// Upload page: PIN gate, then management.
	mux.HandleFunc("GET /upload", s.UploadPage)
	mux.HandleFunc("GET /akko-upload", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/upload", http.StatusMovedPermanently)
	})
	mux.HandleFunc("POST /upload/pin", s.PINSubmit)
	mux.Handle("POST /upload/lock", session(http.HandlerFunc(s.LockSubmit)))
	mux.Handle("POST /upload", session(http.HandlerFunc(s.UploadSubmit)))
	mux.Handle("POST /projects/bulk-delete", session(http.HandlerFunc(s.BulkDeleteSubmit)))
	mux.Handle("POST /projects/{id}", session(http.HandlerFunc(s.ProjectUpdateSubmit)))
	mux.Handle("POST /projects/{id}/delete", session(http.HandlerFunc(s.ProjectDeleteSubmit)))
	mux.Handle("POST /projects/{id}/restore", session(http.HandlerFunc(s.ProjectRestoreSubmit)))

	mux.HandleFunc("/", s.NotFound)

	return SecurityHeaders(mux), nil
}

// NotFound renders the error page for unknown paths.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.Templates.RenderStatus(w, http.StatusNotFound, "error.html", &PageData{
		Title: "Not found",
		Error: "The page you are looking for does not exist.",
	})
}
