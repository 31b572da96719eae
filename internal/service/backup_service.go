package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"ellarises/internal/database"
)

// backupTables lists every exported table in foreign-key order so imports
// can insert front-to-back and clears can delete back-to-front. Sessions,
// reset tokens and migration bookkeeping are ephemeral and excluded.
var backupTables = []string{
	"users",
	"participants",
	"event_templates",
	"event_occurrences",
	"registrations",
	"donations",
	"surveys",
	"milestones",
	"organizations",
	"contacts",
	"grants",
	"enrollments",
}

// BackupData is the JSON backup document
type BackupData struct {
	Version      string                      `json:"version"`
	ExportedAt   time.Time                   `json:"exported_at"`
	DatabaseType string                      `json:"database_type"`
	Tables       map[string][]map[string]any `json:"tables"`
}

// BackupService exports and imports the full dataset as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a JSON backup of every table to path
func (s *BackupService) Export(path string) error {
	data := BackupData{
		Version:      "1",
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.Name(),
		Tables:       make(map[string][]map[string]any, len(backupTables)),
	}

	for _, table := range backupTables {
		rows, err := s.exportTable(table)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", table, err)
		}
		data.Tables[table] = rows
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import loads a JSON backup from r. With clear set, existing rows are
// deleted first in reverse foreign-key order.
func (s *BackupService) Import(r io.Reader, clear bool) error {
	var data BackupData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	if clear {
		for i := len(backupTables) - 1; i >= 0; i-- {
			if _, err := s.db.Exec("DELETE FROM " + backupTables[i]); err != nil {
				return fmt.Errorf("failed to clear %s: %w", backupTables[i], err)
			}
		}
	}

	for _, table := range backupTables {
		for _, row := range data.Tables[table] {
			if err := s.insertRow(table, row); err != nil {
				return fmt.Errorf("failed to import into %s: %w", table, err)
			}
		}
	}
	return nil
}

func (s *BackupService) exportTable(table string) ([]map[string]any, error) {
	rows, err := s.db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []map[string]any
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = exportValue(raw[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (s *BackupService) insertRow(table string, row map[string]any) error {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, col := range columns {
		args[i] = row[col]
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")"
	_, err := s.db.Exec(query, args...)
	return err
}

// exportValue normalizes driver values so the backup is plain JSON
func exportValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
