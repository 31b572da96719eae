package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestHomePage(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Home returned %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Ella Rises") {
		t.Error("Home page should carry the organization name")
	}

	// The catch-all pattern must still 404 unknown paths
	rec = app.get(t, "/no-such-page", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown path returned %d, want 404", rec.Code)
	}
}

func TestPublicEnrollFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/enroll", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Enroll form returned %d, want 200", rec.Code)
	}

	form := url.Values{}
	form.Set("parent_guardian_name", "Ana Reyes")
	form.Set("email", "ana@example.com")
	form.Set("participant_name", "Sofia Reyes")
	form.Set("participant_dob", "2013-02-20")
	form.Set("mariachi_instrument", "Violin")
	form.Set("photo_consent", "on")
	form.Set("tuition_agreement", "on")

	rec = app.postForm(t, "POST", "/enroll", form, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Enroll submit returned %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "has been received") {
		t.Error("Enroll should re-render with the thank-you banner")
	}

	var photoConsent, medicalConsent bool
	var parent string
	err := app.db.QueryRow("SELECT parent_guardian_name, photo_consent, medical_consent FROM enrollments").
		Scan(&parent, &photoConsent, &medicalConsent)
	if err != nil {
		t.Fatalf("Enrollment not stored: %v", err)
	}
	if parent != "Ana Reyes" {
		t.Errorf("parent_guardian_name = %q, want Ana Reyes", parent)
	}
	if !photoConsent {
		t.Error("Checked photo consent should store true")
	}
	if medicalConsent {
		t.Error("Unchecked medical consent should store false")
	}
}

func TestPublicDonateFlow(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{}
	form.Set("donor_name", "Carmen Diaz")
	form.Set("email", "carmen@example.com")
	form.Set("amount", "50.00")
	form.Set("donated_on", "2026-08-29")
	form.Set("message", "Keep the music going")

	rec := app.postForm(t, "POST", "/donate", form, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Donate submit returned %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Thank you") {
		t.Error("Donate should re-render with the thank-you banner")
	}

	var donor string
	var amount float64
	if err := app.db.QueryRow("SELECT donor_name, amount FROM donations").Scan(&donor, &amount); err != nil {
		t.Fatalf("Donation not stored: %v", err)
	}
	if donor != "Carmen Diaz" || amount != 50.0 {
		t.Errorf("Stored donation = %q %v, want Carmen Diaz 50", donor, amount)
	}
}

func TestPublicFormsNeedNoSession(t *testing.T) {
	app := newTestApp(t)

	// Neither form page requires login or CSRF
	for _, path := range []string{"/enroll", "/donate"} {
		if rec := app.get(t, path, nil); rec.Code != http.StatusOK {
			t.Errorf("GET %s anonymous returned %d, want 200", path, rec.Code)
		}
	}
}
