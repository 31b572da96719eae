package handlers

import (
	"encoding/json"
	"net/http"

	"ellarises/internal/database"
)

// SystemHandler serves the diagnostic endpoints
type SystemHandler struct {
	db *database.DB
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *database.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Teapot responds with 418, as tradition demands
func (h *SystemHandler) Teapot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("I'm a teapot. Short and stout. No coffee here.\n"))
}

// TestDB runs a trivial query to confirm the database connection is alive
func (h *SystemHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var one int
	if err := h.db.QueryRow("SELECT 1").Scan(&one); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"ok": true, "database": h.db.Dialect.Name()})
}
