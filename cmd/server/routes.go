package main

import (
	"net/http"

	"ellarises/internal/config"
	"ellarises/internal/handlers"
	"ellarises/internal/resource"
)

// registerRoutes wires every route. The descriptor-driven resources are
// registered from one table so a new resource is one descriptor plus a
// migration, never a new handler.
func registerRoutes(
	mux *http.ServeMux,
	cfg *config.Config,
	mw *handlers.Middleware,
	auth *handlers.AuthHandler,
	res *handlers.ResourceHandler,
	events *handlers.EventHandler,
	users *handlers.UserHandler,
	public *handlers.PublicHandler,
	dashboard *handlers.DashboardHandler,
	system *handlers.SystemHandler,
) {
	// Public pages
	mux.HandleFunc("GET /", public.Home)
	mux.HandleFunc("GET /enroll", public.ShowEnroll)
	mux.HandleFunc("POST /enroll", mw.RateLimit(public.Enroll))
	mux.HandleFunc("GET /donate", public.ShowDonate)
	mux.HandleFunc("POST /donate", mw.RateLimit(public.Donate))

	// Auth
	mux.HandleFunc("GET /login", auth.ShowLogin)
	mux.HandleFunc("POST /login", mw.RateLimit(auth.Login))
	mux.HandleFunc("GET /signup", auth.ShowSignup)
	mux.HandleFunc("POST /signup", mw.RateLimit(auth.Signup))
	mux.HandleFunc("POST /logout", auth.Logout)
	mux.HandleFunc("GET /forgot-password", auth.ShowForgotPassword)
	mux.HandleFunc("POST /forgot-password", mw.RateLimit(auth.ForgotPassword))
	mux.HandleFunc("GET /reset-password", auth.ShowResetPassword)
	mux.HandleFunc("POST /reset-password", mw.RateLimit(auth.ResetPassword))
	mux.HandleFunc("GET /auth/google", auth.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", auth.GoogleOAuthCallback)

	// Dashboard
	mux.HandleFunc("GET /dashboard", mw.RequireAuth(dashboard.ShowDashboard))

	// Descriptor-driven resources: any signed-in account may view, only
	// Managers may change anything
	for _, r := range resource.All() {
		r := r
		mux.HandleFunc("GET /"+r.Name, mw.RequireAuth(res.List(r)))
		mux.HandleFunc("POST /"+r.Name+"/add", mw.RequireManager(mw.CSRFProtect(res.Add(r))))
		mux.HandleFunc("POST /"+r.Name+"/edit/{id}", mw.RequireManager(mw.CSRFProtect(res.Edit(r))))
		mux.HandleFunc("POST /"+r.Name+"/delete/{id}", mw.RequireManager(mw.CSRFProtect(res.Delete(r))))
	}

	// Events: templates, occurrences, and registrations on one page
	mux.HandleFunc("GET /events", mw.RequireAuth(events.ShowEvents))
	mux.HandleFunc("POST /events/templates/add", mw.RequireManager(mw.CSRFProtect(events.AddTemplate)))
	mux.HandleFunc("POST /events/templates/edit/{id}", mw.RequireManager(mw.CSRFProtect(events.EditTemplate)))
	mux.HandleFunc("POST /events/templates/delete/{id}", mw.RequireManager(mw.CSRFProtect(events.DeleteTemplate)))
	mux.HandleFunc("POST /events/occurrences/add", mw.RequireManager(mw.CSRFProtect(events.AddOccurrence)))
	mux.HandleFunc("POST /events/occurrences/edit/{id}", mw.RequireManager(mw.CSRFProtect(events.EditOccurrence)))
	mux.HandleFunc("POST /events/occurrences/delete/{id}", mw.RequireManager(mw.CSRFProtect(events.DeleteOccurrence)))
	mux.HandleFunc("POST /events/registrations/add", mw.RequireManager(mw.CSRFProtect(events.AddRegistration)))
	mux.HandleFunc("POST /events/registrations/edit/{id}", mw.RequireManager(mw.CSRFProtect(events.EditRegistration)))
	mux.HandleFunc("POST /events/registrations/delete/{id}", mw.RequireManager(mw.CSRFProtect(events.DeleteRegistration)))

	// Staff accounts, Manager only including the list
	mux.HandleFunc("GET /users", mw.RequireManager(users.ShowUsers))
	mux.HandleFunc("POST /users/add", mw.RequireManager(mw.CSRFProtect(users.AddUser)))
	mux.HandleFunc("POST /users/edit/{id}", mw.RequireManager(mw.CSRFProtect(users.EditUser)))
	mux.HandleFunc("POST /users/delete/{id}", mw.RequireManager(mw.CSRFProtect(users.DeleteUser)))

	// Diagnostics
	mux.HandleFunc("GET /teapot", system.Teapot)
	mux.HandleFunc("GET /test-db", system.TestDB)

	// Static assets
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
}
