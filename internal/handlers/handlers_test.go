package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ellarises/internal/database"
	"ellarises/internal/repository"
	"ellarises/internal/resource"
	"ellarises/internal/security"
	"ellarises/internal/service"
)

// testApp wires the full handler stack against a temp SQLite database,
// mirroring the server's route registration
type testApp struct {
	mux *http.ServeMux
	db  *database.DB
	mw  *Middleware
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	templates, err := LoadTemplates("../../templates")
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	accountRepo := repository.NewAccountRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authService := service.NewAuthService(accountRepo, time.Hour, "test-secret", false)
	emailService, err := service.NewEmailService("us-east-1", "", "Ella Rises", "http://localhost:8080")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}

	csrf := security.NewCSRFGenerator("test-secret")
	limiter := security.NewRateLimiter(1000, time.Minute)
	mw := NewMiddleware(authService, csrf, limiter)

	authHandler := NewAuthHandler(authService, emailService, templates, nil)
	resourceHandler := NewResourceHandler(resourceRepo, templates, mw)
	eventHandler := NewEventHandler(eventRepo, templates, mw)
	userHandler := NewUserHandler(accountRepo, templates, mw)
	publicHandler := NewPublicHandler(resourceRepo, emailService, templates)
	dashboardHandler := NewDashboardHandler(statsRepo, eventRepo, templates)
	systemHandler := NewSystemHandler(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", publicHandler.Home)
	mux.HandleFunc("GET /enroll", publicHandler.ShowEnroll)
	mux.HandleFunc("POST /enroll", publicHandler.Enroll)
	mux.HandleFunc("GET /donate", publicHandler.ShowDonate)
	mux.HandleFunc("POST /donate", publicHandler.Donate)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /signup", authHandler.ShowSignup)
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("GET /reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /reset-password", authHandler.ResetPassword)
	mux.HandleFunc("GET /dashboard", mw.RequireAuth(dashboardHandler.ShowDashboard))
	for _, r := range resource.All() {
		mux.HandleFunc("GET /"+r.Name, mw.RequireAuth(resourceHandler.List(r)))
		mux.HandleFunc("POST /"+r.Name+"/add", mw.RequireManager(mw.CSRFProtect(resourceHandler.Add(r))))
		mux.HandleFunc("POST /"+r.Name+"/edit/{id}", mw.RequireManager(mw.CSRFProtect(resourceHandler.Edit(r))))
		mux.HandleFunc("POST /"+r.Name+"/delete/{id}", mw.RequireManager(mw.CSRFProtect(resourceHandler.Delete(r))))
	}
	mux.HandleFunc("GET /events", mw.RequireAuth(eventHandler.ShowEvents))
	mux.HandleFunc("POST /events/templates/add", mw.RequireManager(mw.CSRFProtect(eventHandler.AddTemplate)))
	mux.HandleFunc("POST /events/registrations/add", mw.RequireManager(mw.CSRFProtect(eventHandler.AddRegistration)))
	mux.HandleFunc("GET /users", mw.RequireManager(userHandler.ShowUsers))
	mux.HandleFunc("POST /users/add", mw.RequireManager(mw.CSRFProtect(userHandler.AddUser)))
	mux.HandleFunc("POST /users/edit/{id}", mw.RequireManager(mw.CSRFProtect(userHandler.EditUser)))
	mux.HandleFunc("POST /users/delete/{id}", mw.RequireManager(mw.CSRFProtect(userHandler.DeleteUser)))
	mux.HandleFunc("GET /teapot", systemHandler.Teapot)
	mux.HandleFunc("GET /test-db", systemHandler.TestDB)

	return &testApp{mux: mux, db: db, mw: mw}
}

// signup registers an account through the HTTP surface and returns its
// session cookie. The first signup on a fresh database becomes Manager.
func (a *testApp) signup(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set("confirm_password", password)

	rec := a.postForm(t, "POST", "/signup", form, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Signup returned %d, want 303; body: %s", rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("Signup did not set a session cookie")
	return nil
}

func (a *testApp) postForm(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

// csrfToken derives the token the forms would carry for a session cookie
func (a *testApp) csrfToken(t *testing.T, cookie *http.Cookie) string {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	token := a.mw.CSRFToken(req)
	if token == "" {
		t.Fatal("No CSRF token for session")
	}
	return token
}
