package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestTeapot(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/teapot", nil)
	if rec.Code != http.StatusTeapot {
		t.Errorf("Teapot returned %d, want 418", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "teapot") {
		t.Error("Teapot body should mention the teapot")
	}
}

func TestTestDB(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/test-db", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("test-db returned %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var payload struct {
		OK       bool   `json:"ok"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !payload.OK {
		t.Error("test-db should report ok=true for a live database")
	}
	if payload.Database != "sqlite" {
		t.Errorf("database = %q, want sqlite", payload.Database)
	}
}
