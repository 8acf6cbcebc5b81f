package api

import (
	"net/http"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/contact"
)

// Revocations records and checks ended sessions.
type Revocations interface {
	RevocationChecker
	Revoker
}

// Deps are the services the API serves.
type Deps struct {
	Catalog     *catalog.Store
	Contact     *contact.Service
	PIN         *auth.PIN
	JWTSecret   string
	Revocations Revocations
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{PIN: d.PIN, JWTSecret: d.JWTSecret, Revoker: d.Revocations}
	projectHandler := &ProjectHandler{Catalog: d.Catalog}
	contactHandler := &ContactHandler{Contact: d.Contact}

	var checker RevocationChecker
	if d.Revocations != nil {
		checker = d.Revocations
	}
	authMW := AuthMiddleware(d.JWTSecret, checker)

	// Public.
	mux.HandleFunc("POST /api/auth/pin", authHandler.Unlock)
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)

	// Upload session required.
	mux.Handle("POST /api/auth/lock", authMW(http.HandlerFunc(authHandler.Lock)))
	mux.Handle("GET /api/projects/hidden", authMW(http.HandlerFunc(projectHandler.Hidden)))
	mux.Handle("PUT /api/projects/{id}", authMW(http.HandlerFunc(projectHandler.Update)))
	mux.Handle("DELETE /api/projects/{id}", authMW(http.HandlerFunc(projectHandler.Delete)))
	mux.Handle("POST /api/projects/{id}/restore", authMW(http.HandlerFunc(projectHandler.Restore)))
	mux.Handle("POST /api/projects/bulk-delete", authMW(http.HandlerFunc(projectHandler.BulkDelete)))
	mux.Handle("GET /api/messages", authMW(http.HandlerFunc(contactHandler.List)))

	return mux
}
