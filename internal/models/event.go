package models

import (
	"database/sql"
	"time"
)

// EventTemplate is the reusable definition of an event
type EventTemplate struct {
	ID          int64
	Name        string
	EventType   string
	Description string
	CreatedAt   time.Time
}

// EventOccurrence is one scheduled instance of a template
type EventOccurrence struct {
	ID                   int64
	TemplateID           int64
	TemplateName         string
	StartsAt             sql.NullTime
	EndsAt               sql.NullTime
	Location             string
	Capacity             sql.NullInt64
	RegistrationDeadline sql.NullTime
	CreatedAt            time.Time
}

// Registration links a participant to an event occurrence
type Registration struct {
	ID              int64
	ParticipantID   int64
	ParticipantName string
	OccurrenceID    int64
	OccurrenceLabel string
	Status          string
	CreatedAt       time.Time
}

// ParticipantOption is a participant reference used by select inputs
type ParticipantOption struct {
	ID    int64
	Label string
}

// OccurrenceOption is an occurrence reference used by select inputs
type OccurrenceOption struct {
	ID    int64
	Label string
}
