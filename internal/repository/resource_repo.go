package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ellarises/internal/database"
	"ellarises/internal/resource"
)

// Row is one listed record of a generic resource, with display-ready values
// keyed by column name
type Row struct {
	ID     int64
	Values map[string]string
}

// ResourceRepository implements the shared CRUD shape for every resource
// declared in the resource package
type ResourceRepository struct {
	db *database.DB
}

// NewResourceRepository creates a new generic resource repository
func NewResourceRepository(db *database.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// List returns all rows of the resource, filtered by an optional search
// term. The search is a case-insensitive substring match across the
// resource's search columns, OR-combined inside a single parenthesized
// group so it cannot widen the result set past any other predicate.
func (r *ResourceRepository) List(res resource.Resource, search string) ([]Row, error) {
	cols := res.Columns()
	query := "SELECT id, " + strings.Join(cols, ", ") + " FROM " + res.Table

	var args []any
	if clause, clauseArgs := SearchClause(res.SearchColumns, search); clause != "" {
		query += " WHERE " + clause
		args = clauseArgs
	}

	orderBy := res.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	query += " ORDER BY " + orderBy

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", res.Table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var id int64
		raw := make([]any, len(cols))
		dest := make([]any, len(cols)+1)
		dest[0] = &id
		for i := range raw {
			dest[i+1] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", res.Table, err)
		}

		row := Row{ID: id, Values: make(map[string]string, len(cols))}
		for i, f := range res.Fields {
			row.Values[f.Column] = formatValue(raw[i], f.Kind)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Insert adds one row from decoded form arguments aligned with the
// resource's field order and returns the new id
func (r *ResourceRepository) Insert(res resource.Resource, args []any) (int64, error) {
	cols := res.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := "INSERT INTO " + res.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"

	id, err := r.db.ExecReturningID(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", res.Table, err)
	}
	return id, nil
}

// Update overwrites the full row at id with the decoded form arguments.
// Absent form fields arrive as empty/NULL and overwrite prior values.
func (r *ResourceRepository) Update(res resource.Resource, id int64, args []any) error {
	sets := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		sets[i] = f.Column + " = ?"
	}
	query := "UPDATE " + res.Table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	if _, err := r.db.Exec(query, append(args, id)...); err != nil {
		return fmt.Errorf("failed to update %s: %w", res.Table, err)
	}
	return nil
}

// Delete removes the row at id. Deleting a missing id is not an error.
func (r *ResourceRepository) Delete(res resource.Resource, id int64) error {
	query := "DELETE FROM " + res.Table + " WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", res.Table, err)
	}
	return nil
}

// SearchClause builds the parenthesized OR group for a search term. It
// returns an empty clause when there is nothing to filter on.
func SearchClause(columns []string, search string) (string, []any) {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return "", nil
	}

	pattern := "%" + strings.ToLower(search) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// formatValue renders a scanned database value for display
func formatValue(v any, kind resource.Kind) string {
	if v == nil {
		return ""
	}

	if kind == resource.Bool {
		switch b := v.(type) {
		case bool:
			if b {
				return "Yes"
			}
			return "No"
		case int64:
			if b != 0 {
				return "Yes"
			}
			return "No"
		}
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(v)
	}
}
