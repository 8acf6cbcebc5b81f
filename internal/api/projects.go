package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/17okk-xie/portfolio/internal/catalog"
)

// ProjectHandler serves the project catalog.
type ProjectHandler struct {
	Catalog *catalog.Store
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.LoadAll(r.Context())
	if err != nil {
		catalogError(w, err)
		return
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := catalog.ParseCategory(raw)
		if err != nil {
			catalogError(w, err)
			return
		}
		items = catalog.InCategory(items, c)
	}

	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	entry, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		catalogError(w, err)
		return
	}
	if entry.Upload != nil {
		jsonResponse(w, http.StatusOK, entry.Upload)
		return
	}
	jsonResponse(w, http.StatusOK, entry.Item)
}

// Hidden handles GET /api/projects/hidden.
func (h *ProjectHandler) Hidden(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.Hidden(r.Context())
	if err != nil {
		catalogError(w, err)
		return
	}
	if items == nil {
		items = []catalog.CatalogItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tech        *[]string `json:"tech"`
	Tags        *[]string `json:"tags"`
	Status      *string   `json:"status"`
	Category    *string   `json:"category"`
}

func (req updateRequest) patch() (catalog.Patch, error) {
	p := catalog.Patch{
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Tags:        req.Tags,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		p.Title = &title
	}
	if req.Status != nil {
		st, err := catalog.ParseStatus(*req.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if req.Category != nil {
		c, err := catalog.ParseCategory(*req.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	return p, nil
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := req.patch()
	if err != nil {
		catalogError(w, err)
		return
	}
	if p.IsZero() {
		jsonError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	item, err := h.Catalog.Update(r.Context(), id, p)
	if err != nil {
		catalogError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		catalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /api/projects/{id}/restore.
func (h *ProjectHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.Restore(r.Context(), id); err != nil {
		catalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted []int64          `json:"deleted"`
	Failed  map[int64]string `json:"failed"`
}

// BulkDelete handles POST /api/projects/bulk-delete.
func (h *ProjectHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		jsonError(w, http.StatusBadRequest, "ids required")
		return
	}

	res := h.Catalog.BulkDelete(r.Context(), req.IDs)
	out := bulkDeleteResponse{Deleted: res.Deleted, Failed: make(map[int64]string, len(res.Failed))}
	if out.Deleted == nil {
		out.Deleted = []int64{}
	}
	for id, err := range res.Failed {
		out.Failed[id] = err.Error()
	}
	jsonResponse(w, http.StatusOK, out)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
