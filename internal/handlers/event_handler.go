package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"ellarises/internal/database"
	"ellarises/internal/forms"
	"ellarises/internal/repository"
	"ellarises/internal/resource"
)

// EventHandler serves the combined events page: templates, scheduled
// occurrences, and registrations live on one screen
type EventHandler struct {
	repo       *repository.EventRepository
	templates  *template.Template
	middleware *Middleware
}

// NewEventHandler creates a new event handler
func NewEventHandler(repo *repository.EventRepository, templates *template.Template, middleware *Middleware) *EventHandler {
	return &EventHandler{repo: repo, templates: templates, middleware: middleware}
}

// ShowEvents renders the events page
func (h *EventHandler) ShowEvents(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	templates, err := h.repo.ListTemplates(search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing event templates", err)
		return
	}
	occurrences, err := h.repo.ListOccurrences(search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing event occurrences", err)
		return
	}
	registrations, err := h.repo.ListRegistrations()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing registrations", err)
		return
	}
	participantOptions, err := h.repo.ParticipantOptions()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing participants", err)
		return
	}
	occurrenceOptions, err := h.repo.OccurrenceOptions()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing occurrences", err)
		return
	}

	data := EventsViewData{
		Title:              "Events - Ella Rises",
		Account:            GetAccountFromContext(r.Context()),
		Templates:          templates,
		Occurrences:        occurrences,
		Registrations:      registrations,
		ParticipantOptions: participantOptions,
		OccurrenceOptions:  occurrenceOptions,
		Search:             search,
		CSRFToken:          h.middleware.CSRFToken(r),
		Error:              r.URL.Query().Get("error"),
	}
	if err := h.templates.ExecuteTemplate(w, "events.tmpl", data); err != nil {
		log.Printf("Error rendering events.tmpl: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// AddTemplate creates an event template
func (h *EventHandler) AddTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if _, err := h.repo.CreateTemplate(r.FormValue("name"), r.FormValue("event_type"), r.FormValue("description")); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding event template", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// EditTemplate updates an event template
func (h *EventHandler) EditTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.repo.UpdateTemplate(id, r.FormValue("name"), r.FormValue("event_type"), r.FormValue("description")); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating event template", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// DeleteTemplate removes a template and, through the schema's cascade, its
// occurrences and their registrations
func (h *EventHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.repo.DeleteTemplate(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting event template", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// AddOccurrence schedules a template for a date and place
func (h *EventHandler) AddOccurrence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	templateID, err := strconv.ParseInt(r.FormValue("template_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Invalid template id", err)
		return
	}

	startsAt, endsAt, capacity, deadline := occurrenceFields(r)
	if _, err := h.repo.CreateOccurrence(templateID, startsAt, endsAt, r.FormValue("location"), capacity, deadline); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding event occurrence", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// EditOccurrence updates a scheduled occurrence
func (h *EventHandler) EditOccurrence(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	templateID, err := strconv.ParseInt(r.FormValue("template_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Invalid template id", err)
		return
	}

	startsAt, endsAt, capacity, deadline := occurrenceFields(r)
	if err := h.repo.UpdateOccurrence(id, templateID, startsAt, endsAt, r.FormValue("location"), capacity, deadline); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating event occurrence", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// DeleteOccurrence removes a scheduled occurrence
func (h *EventHandler) DeleteOccurrence(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.repo.DeleteOccurrence(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting event occurrence", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// AddRegistration signs a participant up for an occurrence. A participant
// can register for an occurrence at most once; the duplicate surfaces on
// the events page instead of a 500.
func (h *EventHandler) AddRegistration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	participantID, err := strconv.ParseInt(r.FormValue("participant_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Invalid participant id", err)
		return
	}
	occurrenceID, err := strconv.ParseInt(r.FormValue("occurrence_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Invalid occurrence id", err)
		return
	}

	status := r.FormValue("status")
	if status == "" {
		status = "Registered"
	}

	if err := h.repo.CreateRegistration(participantID, occurrenceID, status); err != nil {
		if database.IsUniqueViolation(err) {
			http.Redirect(w, r, "/events?error="+url.QueryEscape("That participant is already registered for this event"), http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding registration", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// EditRegistration updates a registration's status
func (h *EventHandler) EditRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.repo.UpdateRegistrationStatus(id, r.FormValue("status")); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating registration", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// DeleteRegistration removes a registration
func (h *EventHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.repo.DeleteRegistration(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting registration", err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// occurrenceFields pulls the nullable occurrence columns from the form,
// mapping blanks to NULL the same way the descriptor-driven pages do
func occurrenceFields(r *http.Request) (startsAt, endsAt, capacity, deadline any) {
	startsAt = forms.DecodeField(resource.Field{Column: "starts_at", Kind: resource.Date}, r.FormValue("starts_at"))
	endsAt = forms.DecodeField(resource.Field{Column: "ends_at", Kind: resource.Date}, r.FormValue("ends_at"))
	capacity = forms.DecodeField(resource.Field{Column: "capacity", Kind: resource.Integer}, r.FormValue("capacity"))
	deadline = forms.DecodeField(resource.Field{Column: "registration_deadline", Kind: resource.Date}, r.FormValue("registration_deadline"))
	return
}
