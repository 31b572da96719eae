package handlers

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"ellarises/internal/repository"
)

// DashboardHandler serves the post-login landing page
type DashboardHandler struct {
	statsRepo *repository.StatsRepository
	eventRepo *repository.EventRepository
	templates *template.Template
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(statsRepo *repository.StatsRepository, eventRepo *repository.EventRepository, templates *template.Template) *DashboardHandler {
	return &DashboardHandler{statsRepo: statsRepo, eventRepo: eventRepo, templates: templates}
}

// ShowDashboard renders program counts and the upcoming event schedule
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsRepo.GetDashboardStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading dashboard stats", err)
		return
	}

	upcoming, err := h.eventRepo.ListUpcomingOccurrences(time.Now(), 5)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading upcoming events", err)
		return
	}

	data := DashboardViewData{
		Title:    "Dashboard - Ella Rises",
		Account:  GetAccountFromContext(r.Context()),
		Stats:    stats,
		Upcoming: upcoming,
	}
	if err := h.templates.ExecuteTemplate(w, "dashboard.tmpl", data); err != nil {
		log.Printf("Error rendering dashboard.tmpl: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
