package web

import (
	"net/http"

	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/model"
)

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "home.html", &struct {
		PageData
		Names []string
		Links []SocialLink
	}{
		PageData: PageData{Title: "17okk", Nav: "home"},
		Names:    []string{"朔望", "Yixi Xie", "a Programmer", "a Video Editor"},
		Links:    socialLinks,
	})
}

type categoryTab struct {
	ID     catalog.Category
	Label  string
	Active bool
}

// ProjectsPage handles GET /projects.
func (s *Server) ProjectsPage(w http.ResponseWriter, r *http.Request) {
	current := catalog.CategoryCoding
	if raw := r.URL.Query().Get("category"); raw != "" {
		if c, err := catalog.ParseCategory(raw); err == nil {
			current = c
		}
	}

	data := &struct {
		PageData
		Tabs     []categoryTab
		Projects []catalog.CatalogItem
	}{
		PageData: PageData{Title: "Projects", Nav: "projects"},
	}
	for _, c := range catalog.Categories {
		data.Tabs = append(data.Tabs, categoryTab{ID: c, Label: c.Label(), Active: c == current})
	}

	items, err := s.Catalog.LoadAll(r.Context())
	if err != nil {
		s.Logger.Error("failed to load projects", "error", err)
		data.Error = "Projects could not be loaded right now."
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "projects.html", data)
		return
	}
	data.Projects = catalog.InCategory(items, current)

	s.Templates.Render(w, "projects.html", data)
}

// SkillsPage handles GET /skills.
func (s *Server) SkillsPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "skills.html", &struct {
		PageData
		Skills []Skill
	}{
		PageData: PageData{Title: "Skills & Expertise", Nav: "skills"},
		Skills:   skills,
	})
}

type contactData struct {
	PageData
	Email   string
	Form    model.Message
	Invalid map[string]string
}

// ContactPage handles GET /contact.
func (s *Server) ContactPage(w http.ResponseWriter, r *http.Request) {
	data := &contactData{
		PageData: PageData{Title: "Contact", Nav: "contact"},
		Email:    ContactEmail,
	}
	if r.URL.Query().Get("sent") == "1" {
		data.Success = "Thanks! Your message has been sent."
	}
	s.Templates.Render(w, "contact.html", data)
}

// ContactSubmit handles POST /contact.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	m := model.Message{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Body:    r.PostFormValue("message"),
	}

	if _, err := s.Contact.Submit(r.Context(), m); err != nil {
		data := &contactData{
			PageData: PageData{Title: "Contact", Nav: "contact"},
			Email:    ContactEmail,
			Form:     m,
		}
		status := http.StatusBadRequest
		if data.Invalid = model.FieldErrors(err); data.Invalid != nil {
			data.Error = "Please fix the highlighted fields."
		} else {
			s.Logger.Error("failed to save contact message", "error", err)
			data.Error = "Your message could not be sent. Please try again later."
			status = http.StatusInternalServerError
		}
		s.Templates.RenderStatus(w, status, "contact.html", data)
		return
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}
