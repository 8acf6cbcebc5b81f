package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/17okk-xie/portfolio/internal/auth"
)

// Revoker ends sessions before they expire.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

// AuthHandler handles the PIN gate endpoints.
type AuthHandler struct {
	PIN       *auth.PIN
	JWTSecret string
	Revoker   Revoker
}

type pinRequest struct {
	PIN string `json:"pin"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Unlock handles POST /api/auth/pin.
func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.PIN.Check(req.PIN); err != nil {
		if errors.Is(err, auth.ErrWrongPIN) {
			slog.Warn("upload PIN rejected", "remote", r.RemoteAddr)
			jsonError(w, http.StatusUnauthorized, "incorrect PIN")
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.ScopeUpload, auth.SessionExpiry)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("upload session started", "remote", r.RemoteAddr)
	jsonResponse(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(auth.SessionExpiry).UTC(),
	})
}

// Lock handles POST /api/auth/lock. It revokes the calling session.
func (h *AuthHandler) Lock(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if h.Revoker != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := h.Revoker.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke session", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
