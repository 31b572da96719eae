package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"golang.org/x/oauth2"

	"ellarises/internal/security"
	"ellarises/internal/service"
	"ellarises/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	templates    *template.Template
	googleOAuth  *oauth2.Config
}

// NewAuthHandler creates a new auth handler. googleOAuth may be nil when
// Google sign-in is not configured.
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, templates *template.Template, googleOAuth *oauth2.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		templates:    templates,
		googleOAuth:  googleOAuth,
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.renderLogin(w, LoginViewData{
		Title:         "Login - Ella Rises",
		GoogleEnabled: h.googleEnabled(),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(email, password)
	if err != nil {
		h.renderLogin(w, LoginViewData{
			Title:         "Login - Ella Rises",
			Error:         "Invalid email or password",
			Email:         email,
			GoogleEnabled: h.googleEnabled(),
		})
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, consumeReturnTo(w, r), http.StatusSeeOther)
}

// ShowSignup renders the signup page
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.renderSignup(w, SignupViewData{
		Title:         "Sign Up - Ella Rises",
		GoogleEnabled: h.googleEnabled(),
	})
}

// Signup handles signup form submission. A confirmation mismatch is
// rejected before any store access; a duplicate email comes back from the
// UNIQUE constraint as ErrEmailTaken. On success the new account is logged
// in immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	firstName := r.FormValue("first_name")
	lastName := r.FormValue("last_name")

	data := SignupViewData{
		Title:         "Sign Up - Ella Rises",
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		GoogleEnabled: h.googleEnabled(),
	}

	if password != confirm {
		data.Error = "Passwords do not match"
		h.renderSignup(w, data)
		return
	}

	session, _, err := h.authService.Register(email, password, firstName, lastName)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			data.Error = "An account with that email already exists"
		case errors.As(err, &validationErr):
			data.Error = validationErr.Message
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error registering account", err)
			return
		}
		h.renderSignup(w, data)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, consumeReturnTo(w, r), http.StatusSeeOther)
}

// Logout destroys the session and returns to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowForgotPassword renders the forgot-password form
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{Title: "Forgot Password - Ella Rises"})
}

// ForgotPassword issues a reset token and emails the reset link. The
// response is the same whether or not the email matched an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	token, account, err := h.authService.IssueResetToken(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing reset token", err)
		return
	}

	if account != nil {
		if err := h.emailService.SendPasswordResetEmail(r.Context(), account.Email, account.DisplayName(), token); err != nil {
			log.Printf("Error sending reset email: %v", err)
		}
	}

	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title:   "Forgot Password - Ella Rises",
		Success: "If that email has an account, a reset link is on its way",
	})
}

// ShowResetPassword renders the reset form for a token
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, "reset_password.tmpl", ResetPasswordViewData{
		Title: "Reset Password - Ella Rises",
		Token: r.URL.Query().Get("token"),
	})
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	data := ResetPasswordViewData{Title: "Reset Password - Ella Rises", Token: token}

	if password != confirm {
		data.Error = "Passwords do not match"
		h.render(w, "reset_password.tmpl", data)
		return
	}

	if err := h.authService.ResetPassword(token, password); err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			data.Error = "This reset link is invalid or has expired"
		case errors.As(err, &validationErr):
			data.Error = validationErr.Message
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error resetting password", err)
			return
		}
		h.render(w, "reset_password.tmpl", data)
		return
	}

	h.renderLogin(w, LoginViewData{
		Title:         "Login - Ella Rises",
		Success:       "Password updated, you can log in now",
		GoogleEnabled: h.googleEnabled(),
	})
}

func (h *AuthHandler) googleEnabled() bool {
	return h.googleOAuth != nil && h.googleOAuth.ClientID != "" && h.googleOAuth.ClientSecret != ""
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data LoginViewData) {
	h.render(w, "login.tmpl", data)
}

func (h *AuthHandler) renderSignup(w http.ResponseWriter, data SignupViewData) {
	h.render(w, "signup.tmpl", data)
}

func (h *AuthHandler) render(w http.ResponseWriter, name string, data any) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
