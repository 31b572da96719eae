package database

import (
	"path/filepath"
	"sort"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Every table the app uses must come out of the migrations
	tables := []string{
		"users", "sessions", "password_resets",
		"participants", "event_templates", "event_occurrences", "registrations",
		"donations", "surveys", "milestones",
		"organizations", "contacts", "grants", "enrollments",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestDialectMigrationSetsMatch keeps the postgres and mysql schema copies
// from drifting: every dialect subdirectory must ship the same migration
// filenames, so a DB_TYPE=postgres or DB_TYPE=mysql boot finds a full set.
func TestDialectMigrationSetsMatch(t *testing.T) {
	dialects := []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()}

	sets := make(map[string][]string)
	for _, d := range dialects {
		files, err := filepath.Glob(filepath.Join("../../migrations", d.MigrationsSubdir(), "*.sql"))
		if err != nil {
			t.Fatalf("Failed to glob %s migrations: %v", d.Name(), err)
		}
		if len(files) == 0 {
			t.Fatalf("No migration files for dialect %s", d.Name())
		}
		var names []string
		for _, f := range files {
			names = append(names, filepath.Base(f))
		}
		sort.Strings(names)
		sets[d.Name()] = names
	}

	want := sets["sqlite"]
	for _, d := range dialects {
		got := sets[d.Name()]
		if len(got) != len(want) {
			t.Fatalf("Dialect %s has %d migrations, sqlite has %d", d.Name(), len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Dialect %s migration %q does not match sqlite's %q", d.Name(), got[i], want[i])
			}
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	// Running the same migrations again must be a no-op
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	id1, err := db.ExecReturningID(
		"INSERT INTO participants (first_name, last_name, email, phone, dob, school, grade_level, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		"Test", "One", "", "", nil, "", "", "")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	id2, err := db.ExecReturningID(
		"INSERT INTO participants (first_name, last_name, email, phone, dob, school, grade_level, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		"Test", "Two", "", "", nil, "", "", "")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}

	if id1 <= 0 || id2 != id1+1 {
		t.Errorf("Expected sequential positive IDs, got %d then %d", id1, id2)
	}
}

func TestUniqueViolationSurfacesFromDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	insert := "INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)"
	if _, err := db.Exec(insert, "dup@ellarises.org", "hash", "User"); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	_, err := db.Exec(insert, "dup@ellarises.org", "hash", "User")
	if err == nil {
		t.Fatal("Expected a unique violation for the duplicate email")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation should recognize the driver error, got: %v", err)
	}
}
