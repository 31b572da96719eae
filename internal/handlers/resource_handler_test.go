package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

// TestParticipantCRUDFlow walks the whole list/add/edit/delete loop through
// the HTTP surface, the way a Manager would in a browser
func TestParticipantCRUDFlow(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "manager@ellarises.org", "password123")
	token := app.csrfToken(t, cookie)

	// Add
	form := url.Values{}
	form.Set("csrf_token", token)
	form.Set("first_name", "Maria")
	form.Set("last_name", "Garcia")
	form.Set("school", "Lincoln Elementary")
	form.Set("dob", "2012-05-14")

	rec := app.postForm(t, "POST", "/participants/add", form, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Add returned %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/participants" {
		t.Errorf("Add redirected to %q, want /participants", loc)
	}

	// List shows the row
	rec = app.get(t, "/participants", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("List returned %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Maria") {
		t.Error("List should show the added participant")
	}

	var id int64
	if err := app.db.QueryRow("SELECT id FROM participants WHERE first_name = ?", "Maria").Scan(&id); err != nil {
		t.Fatalf("Row not stored: %v", err)
	}

	// Edit overwrites the whole row; the omitted school goes blank
	edit := url.Values{}
	edit.Set("csrf_token", token)
	edit.Set("first_name", "Maria")
	edit.Set("last_name", "Garcia-Lopez")

	rec = app.postForm(t, "POST", "/participants/edit/"+itoa(id), edit, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Edit returned %d, want 303", rec.Code)
	}

	var lastName, school string
	if err := app.db.QueryRow("SELECT last_name, school FROM participants WHERE id = ?", id).Scan(&lastName, &school); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if lastName != "Garcia-Lopez" {
		t.Errorf("last_name = %q, want Garcia-Lopez", lastName)
	}
	if school != "" {
		t.Errorf("school = %q, want empty after full-row overwrite", school)
	}

	// Delete
	del := url.Values{}
	del.Set("csrf_token", token)
	rec = app.postForm(t, "POST", "/participants/delete/"+itoa(id), del, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Delete returned %d, want 303", rec.Code)
	}

	var count int
	if err := app.db.QueryRow("SELECT COUNT(*) FROM participants").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Participant count after delete = %d, want 0", count)
	}
}

func TestResourceListSearchFilters(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "manager@ellarises.org", "password123")
	token := app.csrfToken(t, cookie)

	for _, name := range []string{"Maria", "Sofia"} {
		form := url.Values{}
		form.Set("csrf_token", token)
		form.Set("first_name", name)
		if rec := app.postForm(t, "POST", "/participants/add", form, cookie); rec.Code != http.StatusSeeOther {
			t.Fatalf("Add returned %d", rec.Code)
		}
	}

	rec := app.get(t, "/participants?search=maria", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("Search returned %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Maria") {
		t.Error("Search result should include the match")
	}
	if strings.Contains(body, "Sofia") {
		t.Error("Search result should exclude non-matches")
	}
}

func TestResourceEditBadIDIsRejected(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "manager@ellarises.org", "password123")

	form := url.Values{}
	form.Set("csrf_token", app.csrfToken(t, cookie))

	rec := app.postForm(t, "POST", "/participants/edit/not-a-number", form, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Edit with bad id returned %d, want 400", rec.Code)
	}
}

func TestEveryResourceListRenders(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "manager@ellarises.org", "password123")

	for _, path := range []string{
		"/participants", "/donations", "/surveys", "/milestones",
		"/organizations", "/contacts", "/grants", "/enrollments",
	} {
		rec := app.get(t, path, cookie)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s returned %d, want 200", path, rec.Code)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
