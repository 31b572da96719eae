package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"ellarises/internal/database"
	"ellarises/internal/models"
	"ellarises/internal/repository"
	"ellarises/internal/security"
	"ellarises/internal/validation"
)

// UserHandler serves the staff account admin pages. The whole section is
// Manager-only; the route table enforces that.
type UserHandler struct {
	repo       *repository.AccountRepository
	templates  *template.Template
	middleware *Middleware
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo *repository.AccountRepository, templates *template.Template, middleware *Middleware) *UserHandler {
	return &UserHandler{repo: repo, templates: templates, middleware: middleware}
}

// ShowUsers renders the account list
func (h *UserHandler) ShowUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	accounts, err := h.repo.ListAccounts(search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing accounts", err)
		return
	}

	data := UsersViewData{
		Title:     "Users - Ella Rises",
		Account:   GetAccountFromContext(r.Context()),
		Accounts:  accounts,
		Search:    search,
		CSRFToken: h.middleware.CSRFToken(r),
		Error:     r.URL.Query().Get("error"),
	}
	if err := h.templates.ExecuteTemplate(w, "users.tmpl", data); err != nil {
		log.Printf("Error rendering users.tmpl: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// AddUser creates a staff account with the submitted role and password
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	role := normalizeRole(r.FormValue("role"))

	if err := validation.ValidateEmail(email); err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error hashing password", err)
		return
	}

	if _, err := h.repo.CreateAccount(email, hash, role, r.FormValue("first_name"), r.FormValue("last_name")); err != nil {
		if database.IsUniqueViolation(err) {
			h.redirectWithError(w, r, "An account with that email already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating account", err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// EditUser updates an account's email, role, and name. A non-blank password
// field also resets the password; blank leaves it untouched.
func (h *UserHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	role := normalizeRole(r.FormValue("role"))
	if err := validation.ValidateEmail(email); err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}

	if err := h.repo.UpdateAccount(id, email, role, r.FormValue("first_name"), r.FormValue("last_name")); err != nil {
		if database.IsUniqueViolation(err) {
			h.redirectWithError(w, r, "An account with that email already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating account", err)
		return
	}

	if password := r.FormValue("password"); password != "" {
		if err := validation.ValidatePassword(password); err != nil {
			h.redirectWithError(w, r, err.Error())
			return
		}
		hash, err := security.HashPassword(password)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error hashing password", err)
			return
		}
		if err := h.repo.UpdatePassword(id, hash); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating password", err)
			return
		}
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// DeleteUser removes an account and its sessions. Managers cannot delete
// their own account from this page.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if current := GetAccountFromContext(r.Context()); current != nil && current.ID == id {
		h.redirectWithError(w, r, "You cannot delete your own account")
		return
	}

	if err := h.repo.DeleteAccount(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting account", err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/users?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func normalizeRole(role string) string {
	if role == models.RoleManager {
		return models.RoleManager
	}
	return models.RoleUser
}
