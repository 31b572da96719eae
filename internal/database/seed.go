package database

import (
	"fmt"

	"ellarises/internal/security"
)

// SeedDev inserts demo accounts and sample rows for local development.
// The caller gates this on the environment; it must never run in
// production. Seeding is skipped when the users table already has rows.
func (db *DB) SeedDev() error {
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := security.HashPassword("admin")
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	userHash, err := security.HashPassword("user")
	if err != nil {
		return fmt.Errorf("failed to hash user password: %w", err)
	}

	seedUsers := []struct {
		email, hash, role, first, last string
	}{
		{"admin@ellarises.org", adminHash, "Manager", "Admin", "Account"},
		{"user@ellarises.org", userHash, "User", "Demo", "User"},
	}
	for _, u := range seedUsers {
		query := "INSERT INTO users (email, password_hash, role, first_name, last_name) VALUES (?, ?, ?, ?, ?)"
		if _, err := db.Exec(query, u.email, u.hash, u.role, u.first, u.last); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	participants := [][]any{
		{"Maria", "Garcia", "maria@example.com", "Provo High", "10"},
		{"Sofia", "Rodriguez", "sofia@example.com", "Timpview", "9"},
		{"Isabella", "Martinez", "isabella@example.com", "Orem High", "11"},
	}
	for _, p := range participants {
		query := "INSERT INTO participants (first_name, last_name, email, school, grade_level) VALUES (?, ?, ?, ?, ?)"
		if _, err := db.Exec(query, p...); err != nil {
			return fmt.Errorf("failed to seed participant: %w", err)
		}
	}

	templates := [][]any{
		{"Art & Engineering Workshop", "Workshop", "Hands-on art and engineering session"},
		{"Leadership Summit", "Seminar", "Youth leadership seminar"},
		{"Coding for Creatives", "Workshop", "Intro programming for artists"},
	}
	for _, t := range templates {
		query := "INSERT INTO event_templates (name, event_type, description) VALUES (?, ?, ?)"
		if _, err := db.Exec(query, t...); err != nil {
			return fmt.Errorf("failed to seed event template: %w", err)
		}
	}

	donations := [][]any{
		{"John Doe", "100.00", "2025-09-01", "Keep up the good work!"},
		{"Jane Smith", "250.50", "2025-10-05", "For the kids."},
	}
	for _, d := range donations {
		query := "INSERT INTO donations (donor_name, amount, donated_on, message) VALUES (?, ?, ?, ?)"
		if _, err := db.Exec(query, d...); err != nil {
			return fmt.Errorf("failed to seed donation: %w", err)
		}
	}

	return nil
}
