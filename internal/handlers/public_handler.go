package handlers

import (
	"html/template"
	"log"
	"net/http"

	"ellarises/internal/forms"
	"ellarises/internal/repository"
	"ellarises/internal/resource"
	"ellarises/internal/service"
)

// PublicHandler serves the pages that need no login: the landing page and
// the enrollment and donation forms
type PublicHandler struct {
	repo         *repository.ResourceRepository
	emailService *service.EmailService
	templates    *template.Template
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(repo *repository.ResourceRepository, emailService *service.EmailService, templates *template.Template) *PublicHandler {
	return &PublicHandler{repo: repo, emailService: emailService, templates: templates}
}

// Home renders the landing page
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, "index.tmpl", PublicFormViewData{Title: "Ella Rises"})
}

// ShowEnroll renders the public enrollment form
func (h *PublicHandler) ShowEnroll(w http.ResponseWriter, r *http.Request) {
	h.render(w, "enroll.tmpl", PublicFormViewData{Title: "Enroll - Ella Rises"})
}

// Enroll stores an enrollment submission and re-renders the form with a
// thank-you banner. The confirmation email is best effort.
func (h *PublicHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if _, err := h.repo.Insert(resource.Enrollments, forms.Decode(resource.Enrollments, r.PostForm)); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error saving enrollment", err)
		return
	}

	if email := r.FormValue("email"); email != "" {
		if err := h.emailService.SendEnrollmentConfirmation(r.Context(), email, r.FormValue("parent_guardian_name"), r.FormValue("participant_name")); err != nil {
			log.Printf("Error sending enrollment confirmation: %v", err)
		}
	}

	h.render(w, "enroll.tmpl", PublicFormViewData{Title: "Enroll - Ella Rises", Success: true})
}

// ShowDonate renders the public donation form
func (h *PublicHandler) ShowDonate(w http.ResponseWriter, r *http.Request) {
	h.render(w, "donate.tmpl", PublicFormViewData{Title: "Donate - Ella Rises"})
}

// Donate stores a donation submission and re-renders the form with a
// thank-you banner
func (h *PublicHandler) Donate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if _, err := h.repo.Insert(resource.Donations, forms.Decode(resource.Donations, r.PostForm)); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error saving donation", err)
		return
	}

	h.render(w, "donate.tmpl", PublicFormViewData{Title: "Donate - Ella Rises", Success: true})
}

func (h *PublicHandler) render(w http.ResponseWriter, name string, data PublicFormViewData) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
