package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"ellarises/internal/forms"
	"ellarises/internal/repository"
	"ellarises/internal/resource"
)

// ResourceHandler serves the list/add/edit/delete pages for every
// descriptor-driven resource. One handler, parameterized by descriptor,
// covers participants, donations, surveys, milestones, organizations,
// contacts, grants, and enrollments.
type ResourceHandler struct {
	repo       *repository.ResourceRepository
	templates  *template.Template
	middleware *Middleware
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(repo *repository.ResourceRepository, templates *template.Template, middleware *Middleware) *ResourceHandler {
	return &ResourceHandler{repo: repo, templates: templates, middleware: middleware}
}

// List renders the table plus inline add/edit forms for one resource
func (h *ResourceHandler) List(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		rows, err := h.repo.List(res, search)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing "+res.Name, err)
			return
		}

		data := ResourceListViewData{
			Title:     res.Title + " - Ella Rises",
			Account:   GetAccountFromContext(r.Context()),
			Resource:  res,
			Rows:      rows,
			Search:    search,
			CSRFToken: h.middleware.CSRFToken(r),
			Error:     r.URL.Query().Get("error"),
		}
		if err := h.templates.ExecuteTemplate(w, "resource_list.tmpl", data); err != nil {
			log.Printf("Error rendering resource_list.tmpl for %s: %v", res.Name, err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
	}
}

// Add inserts a new row from the submitted form
func (h *ResourceHandler) Add(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}

		if _, err := h.repo.Insert(res, forms.Decode(res, r.PostForm)); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding to "+res.Name, err)
			return
		}

		http.Redirect(w, r, "/"+res.Name, http.StatusSeeOther)
	}
}

// Edit overwrites every field of an existing row with the submitted values
func (h *ResourceHandler) Edit(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}

		if err := h.repo.Update(res, id, forms.Decode(res, r.PostForm)); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
				fmt.Sprintf("Error updating %s %d", res.Singular, id), err)
			return
		}

		http.Redirect(w, r, "/"+res.Name, http.StatusSeeOther)
	}
}

// Delete removes a row. Deleting an id that no longer exists is a no-op.
func (h *ResourceHandler) Delete(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}

		if err := h.repo.Delete(res, id); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
				fmt.Sprintf("Error deleting %s %d", res.Singular, id), err)
			return
		}

		http.Redirect(w, r, "/"+res.Name, http.StatusSeeOther)
	}
}
