package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/17okk-xie/portfolio/internal/contact"
	"github.com/17okk-xie/portfolio/internal/model"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	Contact *contact.Service
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var m model.Message
	if err := decodeJSON(w, r, &m); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.Contact.Submit(r.Context(), m)
	if err != nil {
		if fields := model.FieldErrors(err); fields != nil {
			jsonResponse(w, http.StatusBadRequest, map[string]any{"error": "invalid message", "fields": fields})
			return
		}
		slog.Error("failed to save contact message", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResponse(w, http.StatusCreated, saved)
}

// List handles GET /api/messages.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	messages, err := h.Contact.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}
