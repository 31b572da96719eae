package repository

import (
	"fmt"

	"ellarises/internal/database"
)

// DashboardStats holds the aggregate counts shown on the dashboard
type DashboardStats struct {
	Participants  int
	EventsPlanned int
	Registrations int
	Donations     int
	DonationTotal float64
	Enrollments   int
	Organizations int
	GrantsOpen    int
}

// StatsRepository computes dashboard aggregates
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetDashboardStats re-queries every aggregate; nothing is cached
func (r *StatsRepository) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM participants", &stats.Participants},
		{"SELECT COUNT(*) FROM event_occurrences", &stats.EventsPlanned},
		{"SELECT COUNT(*) FROM registrations", &stats.Registrations},
		{"SELECT COUNT(*) FROM donations", &stats.Donations},
		{"SELECT COUNT(*) FROM enrollments", &stats.Enrollments},
		{"SELECT COUNT(*) FROM organizations", &stats.Organizations},
		{"SELECT COUNT(*) FROM grants WHERE COALESCE(status, '') NOT IN ('Closed', 'Declined')", &stats.GrantsOpen},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	if err := r.db.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM donations").Scan(&stats.DonationTotal); err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}

	return stats, nil
}
