package handlers

import (
	"net/http"
	"strings"
	"testing"

	"ellarises/internal/repository"
)

func TestDashboardUpcomingShowsOnlyFutureEvents(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "manager@ellarises.org", "password123")

	repo := repository.NewEventRepository(app.db)
	templateID, err := repo.CreateTemplate("Mariachi Workshop", "Workshop", "")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	past := []string{
		"2020-01-10T10:00", "2020-02-10T10:00", "2020-03-10T10:00",
		"2020-04-10T10:00", "2020-05-10T10:00", "2020-06-10T10:00",
	}
	for _, starts := range past {
		if _, err := repo.CreateOccurrence(templateID, starts, nil, "Old Venue", nil, nil); err != nil {
			t.Fatalf("CreateOccurrence failed: %v", err)
		}
	}
	if _, err := repo.CreateOccurrence(templateID, "2099-06-01T18:00", nil, "Future Venue", nil, nil); err != nil {
		t.Fatalf("CreateOccurrence failed: %v", err)
	}

	rec := app.get(t, "/dashboard", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("Dashboard returned %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Future Venue") {
		t.Error("Dashboard should list the future occurrence")
	}
	if strings.Contains(body, "Old Venue") {
		t.Error("Dashboard should not list past occurrences")
	}
}
