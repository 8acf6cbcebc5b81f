package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/imaging"
	"github.com/17okk-xie/portfolio/internal/media"
)

// notices maps the short codes carried in redirects to page messages.
var notices = map[string]string{
	"uploaded": "Project uploaded.",
	"updated":  "Project updated.",
	"deleted":  "Project deleted.",
	"hidden":   "Project hidden. You can restore it below.",
	"restored": "Project restored.",
	"locked":   "Upload page locked.",
}

type uploadData struct {
	PageData
	Statuses   []catalog.Status
	Categories []catalog.Category
	MaxSize    string
	Projects   []catalog.CatalogItem
	Hidden     []catalog.CatalogItem
}

func (s *Server) uploadData(r *http.Request, unlocked bool) *uploadData {
	q := r.URL.Query()
	data := &uploadData{
		PageData:   PageData{Title: "Upload", Nav: "upload", Unlocked: unlocked},
		Statuses:   catalog.Statuses,
		Categories: catalog.Categories,
		MaxSize:    catalog.FormatSize(s.MaxUploadBytes),
	}
	data.Success = notices[q.Get("ok")]
	data.Error = q.Get("err")
	return data
}

// renderUpload renders the upload page, loading the management lists when
// the session is unlocked.
func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request, status int, data *uploadData) {
	if data.Unlocked {
		items, err := s.Catalog.LoadAll(r.Context())
		if err != nil {
			s.Logger.Error("failed to load projects", "error", err)
			data.Error = "Projects could not be loaded."
		}
		data.Projects = items

		hidden, err := s.Catalog.Hidden(r.Context())
		if err != nil {
			s.Logger.Error("failed to load hidden projects", "error", err)
		}
		data.Hidden = hidden
	}
	s.Templates.RenderStatus(w, status, "upload.html", data)
}

// UploadPage handles GET /upload.
func (s *Server) UploadPage(w http.ResponseWriter, r *http.Request) {
	_, ok := s.session(r)
	s.renderUpload(w, r, http.StatusOK, s.uploadData(r, ok))
}

// PINSubmit handles POST /upload/pin.
func (s *Server) PINSubmit(w http.ResponseWriter, r *http.Request) {
	pin := strings.TrimSpace(r.FormValue("pin"))

	if err := s.PIN.Check(pin); err != nil {
		msg := "Incorrect PIN. Please try again."
		if !errors.Is(err, auth.ErrWrongPIN) {
			msg = "Please enter the 4-digit PIN."
		} else {
			s.Logger.Warn("upload PIN rejected", "remote", r.RemoteAddr)
		}
		data := s.uploadData(r, false)
		data.Error = msg
		s.renderUpload(w, r, http.StatusUnauthorized, data)
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, auth.ScopeUpload, auth.SessionExpiry)
	if err != nil {
		s.Logger.Error("failed to generate session token", "error", err)
		data := s.uploadData(r, false)
		data.Error = "Could not start a session."
		s.renderUpload(w, r, http.StatusInternalServerError, data)
		return
	}

	s.setSessionCookie(w, token)
	s.Logger.Info("upload session started", "remote", r.RemoteAddr)
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

// LockSubmit handles POST /upload/lock.
func (s *Server) LockSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if s.Revocations != nil && claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.Revocations.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			s.Logger.Error("failed to revoke session", "error", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/upload?ok=locked", http.StatusSeeOther)
}

// maxFieldBytes bounds each text field of the upload form.
const maxFieldBytes = 64 << 10

// uploadForm collects the parts of a streamed upload.
type uploadForm struct {
	fields   map[string]string
	videoKey string
	coverKey string
	name     string
	mimeType string
	size     int64
}

// UploadSubmit handles POST /upload. The multipart body is streamed: the
// video goes straight to the media store and is removed again if the
// project cannot be created.
func (s *Server) UploadSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes+imaging.MaxCoverBytes+1<<20)

	form, err := s.readUpload(r)
	if err != nil {
		s.discard(r, form)
		s.uploadFailed(w, r, err)
		return
	}
	if form.videoKey == "" {
		s.discard(r, form)
		s.uploadFailed(w, r, &catalog.ValidationError{Field: "media", Message: "please select a video file"})
		return
	}

	in := catalog.CreateInput{
		Title:       form.fields["title"],
		Description: form.fields["description"],
		Tech:        form.fields["tech"],
		Tags:        form.fields["tags"],
		Status:      form.fields["status"],
		Category:    form.fields["category"],
		Links: catalog.Links{
			GitHub:  form.fields["github"],
			Demo:    form.fields["demo"],
			Behance: form.fields["behance"],
		},
		MediaRef: media.Ref(form.videoKey),
		FileName: form.name,
		FileSize: form.size,
		MIMEType: form.mimeType,
	}
	if form.coverKey != "" {
		in.CoverRef = media.Ref(form.coverKey)
	}

	if _, err := s.Catalog.Create(r.Context(), in); err != nil {
		s.discard(r, form)
		s.uploadFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/upload?ok=uploaded", http.StatusSeeOther)
}

func (s *Server) readUpload(r *http.Request) (*uploadForm, error) {
	form := &uploadForm{fields: make(map[string]string)}

	mr, err := r.MultipartReader()
	if err != nil {
		return form, &catalog.ValidationError{Field: "form", Message: "expected a multipart upload"}
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return form, fmt.Errorf("reading upload: %w", err)
		}

		switch name := part.FormName(); {
		case name == "video" && part.FileName() != "":
			if form.videoKey != "" {
				part.Close()
				continue
			}
			mimeType := part.Header.Get("Content-Type")
			if err := catalog.ValidateMediaType(part.FileName(), mimeType); err != nil {
				part.Close()
				return form, err
			}
			key, size, err := s.Media.Save(r.Context(), part.FileName(), mimeType, part, s.MaxUploadBytes)
			part.Close()
			if errors.Is(err, media.ErrTooLarge) {
				return form, &catalog.ValidationError{
					Field:   "media",
					Message: "file too large: maximum size is " + catalog.FormatSize(s.MaxUploadBytes),
				}
			}
			if err != nil {
				return form, err
			}
			form.videoKey, form.name, form.mimeType, form.size = key, part.FileName(), mimeType, size

		case name == "cover" && part.FileName() != "":
			if form.coverKey != "" {
				part.Close()
				continue
			}
			cover, err := imaging.ProcessCover(part)
			part.Close()
			if err != nil {
				return form, &catalog.ValidationError{Field: "cover", Message: "cover image: " + err.Error()}
			}
			key, _, err := s.Media.Save(r.Context(), "cover.jpg", cover.MIME, bytes.NewReader(cover.Data), 0)
			if err != nil {
				return form, err
			}
			form.coverKey = key

		case part.FileName() == "":
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			part.Close()
			if err != nil {
				return form, fmt.Errorf("reading field %s: %w", name, err)
			}
			form.fields[name] = string(value)

		default:
			part.Close()
		}
	}
}

// discard removes media stored for an upload that did not become a project.
func (s *Server) discard(r *http.Request, form *uploadForm) {
	if form == nil {
		return
	}
	for _, key := range []string{form.videoKey, form.coverKey} {
		if key == "" {
			continue
		}
		if err := s.Media.Delete(r.Context(), key); err != nil && !errors.Is(err, media.ErrNotFound) {
			s.Logger.Error("failed to remove orphaned upload", "key", key, "error", err)
		}
	}
}

func (s *Server) uploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr  *catalog.ValidationError
		maxed *http.MaxBytesError
	)
	data := s.uploadData(r, true)
	status := http.StatusBadRequest
	switch {
	case errors.As(err, &verr):
		data.Error = verr.Message
	case errors.As(err, &maxed):
		data.Error = "file too large: maximum size is " + catalog.FormatSize(s.MaxUploadBytes)
		status = http.StatusRequestEntityTooLarge
	default:
		s.Logger.Error("upload failed", "error", err)
		data.Error = "Upload failed. Please try again."
		status = http.StatusInternalServerError
	}
	s.renderUpload(w, r, status, data)
}

// ProjectUpdateSubmit handles POST /projects/{id}. Only fields present in
// the form are changed.
func (s *Server) ProjectUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var p catalog.Patch
	if _, present := r.PostForm["title"]; present {
		title := strings.TrimSpace(r.PostFormValue("title"))
		p.Title = &title
	}
	if _, present := r.PostForm["description"]; present {
		desc := strings.TrimSpace(r.PostFormValue("description"))
		p.Description = &desc
	}
	if _, present := r.PostForm["tech"]; present {
		tech := strings.Split(r.PostFormValue("tech"), ",")
		p.Tech = &tech
	}
	if _, present := r.PostForm["tags"]; present {
		tags := strings.Split(r.PostFormValue("tags"), ",")
		p.Tags = &tags
	}
	if raw := r.PostFormValue("status"); raw != "" {
		st, err := catalog.ParseStatus(raw)
		if err != nil {
			s.redirectError(w, r, err)
			return
		}
		p.Status = &st
	}
	if raw := r.PostFormValue("category"); raw != "" {
		c, err := catalog.ParseCategory(raw)
		if err != nil {
			s.redirectError(w, r, err)
			return
		}
		p.Category = &c
	}

	if _, err := s.Catalog.Update(r.Context(), id, p); err != nil {
		s.redirectError(w, r, err)
		return
	}
	http.Redirect(w, r, "/upload?ok=updated", http.StatusSeeOther)
}

// ProjectDeleteSubmit handles POST /projects/{id}/delete.
func (s *Server) ProjectDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	entry, err := s.Catalog.Get(r.Context(), id)
	if err != nil {
		s.redirectError(w, r, err)
		return
	}
	if err := s.Catalog.Delete(r.Context(), id); err != nil {
		s.redirectError(w, r, err)
		return
	}

	notice := "deleted"
	if entry.Kind == catalog.KindBuiltin {
		notice = "hidden"
	}
	http.Redirect(w, r, "/upload?ok="+notice, http.StatusSeeOther)
}

// ProjectRestoreSubmit handles POST /projects/{id}/restore.
func (s *Server) ProjectRestoreSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.Catalog.Restore(r.Context(), id); err != nil {
		s.redirectError(w, r, err)
		return
	}
	http.Redirect(w, r, "/upload?ok=restored", http.StatusSeeOther)
}

// BulkDeleteSubmit handles POST /projects/bulk-delete with one "id" value
// per selected project.
func (s *Server) BulkDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var ids []int64
	for _, raw := range r.PostForm["id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		http.Redirect(w, r, "/upload?err="+url.QueryEscape("Select at least one project."), http.StatusSeeOther)
		return
	}

	res := s.Catalog.BulkDelete(r.Context(), ids)
	if len(res.Failed) > 0 {
		msg := fmt.Sprintf("Deleted %d of %d projects.", len(res.Deleted), len(res.Deleted)+len(res.Failed))
		http.Redirect(w, r, "/upload?err="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/upload?ok=deleted", http.StatusSeeOther)
}

// redirectError sends the browser back to the upload page with a message
// describing err.
func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *catalog.ValidationError
		nf   *catalog.NotFoundError
		msg  string
	)
	switch {
	case errors.As(err, &verr):
		msg = verr.Message
	case errors.As(err, &nf):
		msg = "That project no longer exists."
	default:
		s.Logger.Error("catalog operation failed", "error", err)
		msg = "Something went wrong. Please try again."
	}
	http.Redirect(w, r, "/upload?err="+url.QueryEscape(msg), http.StatusSeeOther)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// MediaGet handles GET /media/{key}. Range requests are supported so videos
// can seek.
func (s *Server) MediaGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	f, info, err := s.Media.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) || errors.Is(err, media.ErrInvalidKey) {
			http.NotFound(w, r)
			return
		}
		s.Logger.Error("failed to open media", "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", info.MIME)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, info.Key, info.ModTime, f)
}
