package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"ellarises/internal/models"
	"ellarises/internal/security"
	"ellarises/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const AccountContextKey ContextKey = "account"

// Middleware holds dependencies for the per-route guards
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		limiter:     limiter,
	}
}

// RequireAuth passes when the request carries a valid session. Otherwise it
// records the requested path in a single-use return_to cookie and redirects
// to the login page; the handler body never runs.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := m.sessionAccount(w, r)
		if account == nil {
			if r.Method == http.MethodGet {
				setReturnTo(w, r)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, account)
		next(w, r.WithContext(ctx))
	}
}

// RequireManager passes only when the session account holds the Manager
// role. Any other caller, anonymous included, gets a fixed denial rather
// than a redirect.
func (m *Middleware) RequireManager(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := m.sessionAccount(w, r)
		if account == nil || !account.IsManager() {
			respondWithError(w, http.StatusForbidden, ErrAccessDenied, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, account)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect validates the csrf_token form field against the session
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusForbidden, ErrAccessDenied, "", nil)
			return
		}
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}
		if !m.csrf.ValidateToken(cookie.Value, r.FormValue("csrf_token")) {
			respondWithError(w, http.StatusForbidden, "Invalid CSRF token", "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles a handler per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, try again later", "", nil)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the CSRF token for the request's session, or empty when
// there is no session
func (m *Middleware) CSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, err := m.csrf.GenerateToken(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

// sessionAccount resolves the request's session to an account, clearing a
// stale cookie on the way out
func (m *Middleware) sessionAccount(w http.ResponseWriter, r *http.Request) *models.Account {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	account, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
		return nil
	}
	return account
}

// setReturnTo records the originally requested path so login can send the
// caller back. Only local paths are ever stored.
func setReturnTo(w http.ResponseWriter, r *http.Request) {
	path := r.URL.RequestURI()
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ReturnToCookieName,
		Value:    path,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// consumeReturnTo pops the stored return path, falling back to the dashboard
func consumeReturnTo(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(ReturnToCookieName)
	if err != nil {
		return "/dashboard"
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, ReturnToCookieName))

	path := cookie.Value
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/dashboard"
	}
	return path
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetAccountFromContext retrieves the account from the request context
func GetAccountFromContext(ctx context.Context) *models.Account {
	account, ok := ctx.Value(AccountContextKey).(*models.Account)
	if !ok {
		return nil
	}
	return account
}
