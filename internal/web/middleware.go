package web

import (
	"context"
	"net/http"

	"github.com/17okk-xie/portfolio/internal/auth"
)

// SessionCookie names the cookie carrying the upload session token.
const SessionCookie = "upload_session"

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

// session returns the claims of a valid, unrevoked upload session cookie.
func (s *Server) session(r *http.Request) (*auth.Claims, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value, auth.ScopeUpload)
	if err != nil {
		return nil, false
	}

	if s.Revocations != nil && claims.ID != "" {
		revoked, err := s.Revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			s.Logger.Error("failed to check token revocation", "error", err)
			return nil, false
		}
		if revoked {
			return nil, false
		}
	}
	return claims, true
}

// RequireSession rejects requests without a valid upload session by sending
// the browser back to the PIN form.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.session(r)
		if !ok {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/upload", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), webClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWebClaims retrieves the session claims from web context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.SessionExpiry.Seconds()),
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// SecurityHeaders adds protective response headers to every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"img-src 'self' data:; "+
				"media-src 'self'; "+
				"style-src 'self'; "+
				"script-src 'self'; "+
				"form-action 'self'")
		next.ServeHTTP(w, r)
	})
}
