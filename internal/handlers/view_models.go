package handlers

import (
	"ellarises/internal/models"
	"ellarises/internal/repository"
	"ellarises/internal/resource"
)

type LoginViewData struct {
	Title         string
	Error         string
	Success       string
	Email         string
	GoogleEnabled bool
}

type SignupViewData struct {
	Title         string
	Error         string
	Email         string
	FirstName     string
	LastName      string
	GoogleEnabled bool
}

type ForgotPasswordViewData struct {
	Title   string
	Success string
	Error   string
}

type ResetPasswordViewData struct {
	Title string
	Token string
	Error string
}

type DashboardViewData struct {
	Title    string
	Account  *models.Account
	Stats    *repository.DashboardStats
	Upcoming []models.EventOccurrence
}

type ResourceListViewData struct {
	Title     string
	Account   *models.Account
	Resource  resource.Resource
	Rows      []repository.Row
	Search    string
	CSRFToken string
	Error     string
}

type EventsViewData struct {
	Title              string
	Account            *models.Account
	Templates          []models.EventTemplate
	Occurrences        []models.EventOccurrence
	Registrations      []models.Registration
	ParticipantOptions []models.ParticipantOption
	OccurrenceOptions  []models.OccurrenceOption
	Search             string
	CSRFToken          string
	Error              string
}

type UsersViewData struct {
	Title     string
	Account   *models.Account
	Accounts  []models.Account
	Search    string
	CSRFToken string
	Error     string
}

type PublicFormViewData struct {
	Title   string
	Success bool
	Error   string
}
