package repository

import (
	"fmt"
	"strings"
	"time"

	"ellarises/internal/database"
	"ellarises/internal/models"
)

// EventRepository handles event templates, their scheduled occurrences and
// participant registrations
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListTemplates returns event templates, optionally filtered by a search
// term over name, type and description
func (r *EventRepository) ListTemplates(search string) ([]models.EventTemplate, error) {
	query := "SELECT id, COALESCE(name, ''), COALESCE(event_type, ''), COALESCE(description, ''), created_at FROM event_templates"
	var args []any
	if clause, clauseArgs := SearchClause([]string{"COALESCE(name, '')", "COALESCE(event_type, '')", "COALESCE(description, '')"}, search); clause != "" {
		query += " WHERE " + clause
		args = clauseArgs
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event templates: %w", err)
	}
	defer rows.Close()

	var templates []models.EventTemplate
	for rows.Next() {
		var t models.EventTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.EventType, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CreateTemplate inserts a new event template
func (r *EventRepository) CreateTemplate(name, eventType, description string) (int64, error) {
	query := "INSERT INTO event_templates (name, event_type, description) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, name, eventType, description)
	if err != nil {
		return 0, fmt.Errorf("failed to create event template: %w", err)
	}
	return id, nil
}

// UpdateTemplate overwrites an event template
func (r *EventRepository) UpdateTemplate(id int64, name, eventType, description string) error {
	query := "UPDATE event_templates SET name = ?, event_type = ?, description = ? WHERE id = ?"
	if _, err := r.db.Exec(query, name, eventType, description, id); err != nil {
		return fmt.Errorf("failed to update event template: %w", err)
	}
	return nil
}

// DeleteTemplate deletes a template; its occurrences cascade in the schema
func (r *EventRepository) DeleteTemplate(id int64) error {
	if _, err := r.db.Exec("DELETE FROM event_templates WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete event template: %w", err)
	}
	return nil
}

// ListOccurrences returns scheduled occurrences joined with their template.
// The search group is parenthesized so the join predicate stays intact.
func (r *EventRepository) ListOccurrences(search string) ([]models.EventOccurrence, error) {
	query := `
		SELECT o.id, o.template_id, COALESCE(t.name, ''), o.starts_at, o.ends_at,
		       COALESCE(o.location, ''), o.capacity, o.registration_deadline, o.created_at
		FROM event_occurrences o
		JOIN event_templates t ON t.id = o.template_id
	`
	var args []any
	if clause, clauseArgs := SearchClause([]string{"COALESCE(t.name, '')", "COALESCE(t.event_type, '')", "COALESCE(o.location, '')"}, search); clause != "" {
		query += " WHERE " + clause
		args = clauseArgs
	}
	query += " ORDER BY o.starts_at"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences: %w", err)
	}
	defer rows.Close()

	var occurrences []models.EventOccurrence
	for rows.Next() {
		var o models.EventOccurrence
		if err := rows.Scan(&o.ID, &o.TemplateID, &o.TemplateName, &o.StartsAt, &o.EndsAt, &o.Location, &o.Capacity, &o.RegistrationDeadline, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		occurrences = append(occurrences, o)
	}
	return occurrences, rows.Err()
}

// ListUpcomingOccurrences returns the next occurrences starting at or after
// from, soonest first, capped at limit in the query itself
func (r *EventRepository) ListUpcomingOccurrences(from time.Time, limit int) ([]models.EventOccurrence, error) {
	query := `
		SELECT o.id, o.template_id, COALESCE(t.name, ''), o.starts_at, o.ends_at,
		       COALESCE(o.location, ''), o.capacity, o.registration_deadline, o.created_at
		FROM event_occurrences o
		JOIN event_templates t ON t.id = o.template_id
		WHERE o.starts_at >= ?
		ORDER BY o.starts_at
		LIMIT ?
	`
	rows, err := r.db.Query(query, from.Format("2006-01-02 15:04:05"), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming occurrences: %w", err)
	}
	defer rows.Close()

	var occurrences []models.EventOccurrence
	for rows.Next() {
		var o models.EventOccurrence
		if err := rows.Scan(&o.ID, &o.TemplateID, &o.TemplateName, &o.StartsAt, &o.EndsAt, &o.Location, &o.Capacity, &o.RegistrationDeadline, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		occurrences = append(occurrences, o)
	}
	return occurrences, rows.Err()
}

// CreateOccurrence schedules a new occurrence of a template. Time and
// capacity arguments arrive pre-decoded (nil for absent form fields).
func (r *EventRepository) CreateOccurrence(templateID int64, startsAt, endsAt any, location string, capacity, deadline any) (int64, error) {
	query := `
		INSERT INTO event_occurrences (template_id, starts_at, ends_at, location, capacity, registration_deadline)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, templateID, startsAt, endsAt, location, capacity, deadline)
	if err != nil {
		return 0, fmt.Errorf("failed to create occurrence: %w", err)
	}
	return id, nil
}

// UpdateOccurrence overwrites a scheduled occurrence
func (r *EventRepository) UpdateOccurrence(id, templateID int64, startsAt, endsAt any, location string, capacity, deadline any) error {
	query := `
		UPDATE event_occurrences
		SET template_id = ?, starts_at = ?, ends_at = ?, location = ?, capacity = ?, registration_deadline = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, templateID, startsAt, endsAt, location, capacity, deadline, id); err != nil {
		return fmt.Errorf("failed to update occurrence: %w", err)
	}
	return nil
}

// DeleteOccurrence deletes an occurrence; its registrations cascade
func (r *EventRepository) DeleteOccurrence(id int64) error {
	if _, err := r.db.Exec("DELETE FROM event_occurrences WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete occurrence: %w", err)
	}
	return nil
}

// ListRegistrations returns registrations joined with participant and
// occurrence details. Display labels are assembled in Go; SQL string
// concatenation is not portable across the supported dialects (MySQL
// parses || as logical OR by default).
func (r *EventRepository) ListRegistrations() ([]models.Registration, error) {
	query := `
		SELECT g.id, g.participant_id,
		       COALESCE(p.first_name, ''), COALESCE(p.last_name, ''),
		       g.occurrence_id, COALESCE(t.name, ''), COALESCE(g.status, ''), g.created_at
		FROM registrations g
		JOIN participants p ON p.id = g.participant_id
		JOIN event_occurrences o ON o.id = g.occurrence_id
		JOIN event_templates t ON t.id = o.template_id
		ORDER BY g.created_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []models.Registration
	for rows.Next() {
		var g models.Registration
		var firstName, lastName string
		if err := rows.Scan(&g.ID, &g.ParticipantID, &firstName, &lastName, &g.OccurrenceID, &g.OccurrenceLabel, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		g.ParticipantName = joinName(firstName, lastName)
		registrations = append(registrations, g)
	}
	return registrations, rows.Err()
}

// CreateRegistration links a participant to an occurrence. The schema's
// UNIQUE(participant_id, occurrence_id) makes a repeat registration surface
// as a unique-constraint violation; callers map it with
// database.IsUniqueViolation.
func (r *EventRepository) CreateRegistration(participantID, occurrenceID int64, status string) error {
	query := "INSERT INTO registrations (participant_id, occurrence_id, status) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, participantID, occurrenceID, status)
	return err
}

// UpdateRegistrationStatus sets the status of a registration
func (r *EventRepository) UpdateRegistrationStatus(id int64, status string) error {
	if _, err := r.db.Exec("UPDATE registrations SET status = ? WHERE id = ?", status, id); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return nil
}

// DeleteRegistration removes a registration
func (r *EventRepository) DeleteRegistration(id int64) error {
	if _, err := r.db.Exec("DELETE FROM registrations WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

// ParticipantOptions lists participants for registration select inputs
func (r *EventRepository) ParticipantOptions() ([]models.ParticipantOption, error) {
	query := `
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM participants ORDER BY last_name, first_name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant options: %w", err)
	}
	defer rows.Close()

	var options []models.ParticipantOption
	for rows.Next() {
		var o models.ParticipantOption
		var firstName, lastName string
		if err := rows.Scan(&o.ID, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("failed to scan participant option: %w", err)
		}
		o.Label = joinName(firstName, lastName)
		options = append(options, o)
	}
	return options, rows.Err()
}

// OccurrenceOptions lists occurrences for registration select inputs
func (r *EventRepository) OccurrenceOptions() ([]models.OccurrenceOption, error) {
	query := `
		SELECT o.id, COALESCE(t.name, ''), COALESCE(o.location, '')
		FROM event_occurrences o
		JOIN event_templates t ON t.id = o.template_id
		ORDER BY o.starts_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrence options: %w", err)
	}
	defer rows.Close()

	var options []models.OccurrenceOption
	for rows.Next() {
		var o models.OccurrenceOption
		var templateName, location string
		if err := rows.Scan(&o.ID, &templateName, &location); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence option: %w", err)
		}
		o.Label = templateName
		if location != "" {
			o.Label += " @ " + location
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// joinName combines name parts, skipping blanks
func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
