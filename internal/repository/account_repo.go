package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ellarises/internal/database"
	"ellarises/internal/models"
)

// AccountRepository handles database operations for accounts, sessions and
// password-reset bookkeeping
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, password_hash, role,
		COALESCE(first_name, ''), COALESCE(last_name, ''),
		COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		created_at, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.FirstName,
		&account.LastName,
		&account.OAuthProvider,
		&account.OAuthSubject,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// CreateAccount inserts a new account. The first account in an empty store
// becomes Manager so a fresh deployment can administer itself; later
// accounts receive the given role (User for self-signup). A duplicate
// email surfaces as a unique-constraint violation from the driver; callers
// map it with database.IsUniqueViolation.
func (r *AccountRepository) CreateAccount(email, passwordHash, role, firstName, lastName string) (*models.Account, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count == 0 {
		role = models.RoleManager
	}

	query := `
		INSERT INTO users (email, password_hash, role, first_name, last_name)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, role, firstName, lastName)
	if err != nil {
		return nil, err
	}

	return &models.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetAccountByEmail retrieves an account by email address
func (r *AccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM users WHERE email = ?"
	return scanAccount(r.db.QueryRow(query, email))
}

// GetAccountByID retrieves an account by ID
func (r *AccountRepository) GetAccountByID(id int64) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM users WHERE id = ?"
	return scanAccount(r.db.QueryRow(query, id))
}

// GetAccountByOAuth retrieves an account by OAuth provider and subject
func (r *AccountRepository) GetAccountByOAuth(provider, subject string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanAccount(r.db.QueryRow(query, provider, subject))
}

// LinkOAuthProvider attaches an OAuth identity to an existing account
func (r *AccountRepository) LinkOAuthProvider(id int64, provider, subject string) error {
	query := "UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, provider, subject, id); err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return nil
}

// ListAccounts retrieves all accounts, optionally filtered by a search term
// over email and name columns
func (r *AccountRepository) ListAccounts(search string) ([]models.Account, error) {
	query := "SELECT " + accountColumns + " FROM users"
	var args []any
	if clause, clauseArgs := SearchClause([]string{"email", "COALESCE(first_name, '')", "COALESCE(last_name, '')"}, search); clause != "" {
		query += " WHERE " + clause
		args = clauseArgs
	}
	query += " ORDER BY email"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(
			&a.ID,
			&a.Email,
			&a.PasswordHash,
			&a.Role,
			&a.FirstName,
			&a.LastName,
			&a.OAuthProvider,
			&a.OAuthSubject,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount overwrites an account's profile fields and role
func (r *AccountRepository) UpdateAccount(id int64, email, role, firstName, lastName string) error {
	query := `
		UPDATE users
		SET email = ?, role = ?, first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, email, role, firstName, lastName, id); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// UpdatePassword replaces an account's password hash
func (r *AccountRepository) UpdatePassword(id int64, passwordHash string) error {
	query := "UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteAccount deletes an account; its sessions cascade
func (r *AccountRepository) DeleteAccount(id int64) error {
	if _, err := r.db.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// CreateSession creates a new session for an account
func (r *AccountRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := "INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *AccountRepository) GetSession(sessionID string) (*models.Session, error) {
	query := "SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?"
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *AccountRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *AccountRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// RecordResetToken stores the id of an issued password-reset token so it
// can be invalidated after one use
func (r *AccountRepository) RecordResetToken(tokenID string, userID int64) error {
	query := "INSERT INTO password_resets (token_id, user_id) VALUES (?, ?)"
	if _, err := r.db.Exec(query, tokenID, userID); err != nil {
		return fmt.Errorf("failed to record reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken marks a reset token used and reports whether this call
// was the one that consumed it. The conditional UPDATE makes consumption
// atomic, so two concurrent submissions of the same token cannot both
// succeed; false means the token was never issued or is already spent.
func (r *AccountRepository) ConsumeResetToken(tokenID string) (bool, error) {
	query := "UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE token_id = ? AND used_at IS NULL"
	result, err := r.db.Exec(query, tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to consume reset token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to consume reset token: %w", err)
	}
	return affected == 1, nil
}
