package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ellarises/internal/database"
	"ellarises/internal/models"
	"ellarises/internal/repository"
	"ellarises/internal/security"
	"ellarises/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset link")
)

// The fixed development credential pair. It only works when the service is
// built with the dev bypass enabled, which config refuses outside the
// development environment.
const (
	devBypassEmail    = "test@ellarises.org"
	devBypassPassword = "letmein"
)

// AuthService handles authentication business logic
type AuthService struct {
	accountRepo     *repository.AccountRepository
	sessionDuration time.Duration
	resetSecret     []byte
	devBypass       bool
}

// NewAuthService creates a new auth service. resetSecret signs password
// reset tokens; devBypass must come from config so it stays a
// development-only shortcut.
func NewAuthService(accountRepo *repository.AccountRepository, sessionDuration time.Duration, resetSecret string, devBypass bool) *AuthService {
	return &AuthService{
		accountRepo:     accountRepo,
		sessionDuration: sessionDuration,
		resetSecret:     []byte(resetSecret),
		devBypass:       devBypass,
	}
}

// Register creates a new account and logs it in. A duplicate email is
// detected through the UNIQUE constraint rather than a lookup, so two
// concurrent signups cannot both succeed.
func (s *AuthService) Register(email, password, firstName, lastName string) (*models.Session, *models.Account, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accountRepo.CreateAccount(email, passwordHash, models.RoleUser, firstName, lastName)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create account: %w", err)
	}

	session, err := s.createSession(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, account, nil
}

// Login authenticates an account and creates a session
func (s *AuthService) Login(email, password string) (*models.Session, *models.Account, error) {
	account, err := s.accountRepo.GetAccountByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if s.devBypass && email == devBypassEmail && password == devBypassPassword {
		log.Printf("WARNING: dev login bypass used for %s", email)
	} else if !security.CheckPassword(password, account.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, account, nil
}

// ValidateSession checks if a session is valid and returns the associated account
func (s *AuthService) ValidateSession(sessionID string) (*models.Account, error) {
	session, err := s.accountRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.accountRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	account, err := s.accountRepo.GetAccountByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrSessionNotFound
	}

	return account, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.accountRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.accountRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates an account using an OAuth provider.
// Accounts created this way get the User role; a Manager promotes them
// through user administration.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.Account, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	account, err := s.accountRepo.GetAccountByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth account: %w", err)
	}

	if account == nil {
		existing, err := s.accountRepo.GetAccountByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing account: %w", err)
		}
		if existing != nil {
			if existing.OAuthProvider != "" && existing.OAuthProvider != provider {
				return nil, nil, ErrEmailTaken
			}
			if err := s.accountRepo.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			account = existing
		} else {
			firstName, lastName := splitName(name, email)
			randomHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			created, err := s.accountRepo.CreateAccount(email, randomHash, models.RoleUser, firstName, lastName)
			if err != nil {
				if database.IsUniqueViolation(err) {
					return nil, nil, ErrEmailTaken
				}
				return nil, nil, fmt.Errorf("failed to create oauth account: %w", err)
			}
			if err := s.accountRepo.LinkOAuthProvider(created.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			account = created
		}
	}

	session, err := s.createSession(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, account, nil
}

// IssueResetToken creates a signed, single-use password reset token for the
// account with the given email. A missing account returns an empty token
// without error so the caller does not reveal which emails exist.
func (s *AuthService) IssueResetToken(email string) (string, *models.Account, error) {
	account, err := s.accountRepo.GetAccountByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return "", nil, nil
	}

	tokenID := security.GenerateSessionID()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(account.ID, 10),
		ID:        tokenID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign reset token: %w", err)
	}

	if err := s.accountRepo.RecordResetToken(tokenID, account.ID); err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// ResetPassword validates a reset token and replaces the account password.
// Tokens are single-use: the recorded token id is consumed here.
func (s *AuthService) ResetPassword(tokenString, newPassword string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.resetSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidResetToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return ErrInvalidResetToken
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Consume before writing the new password. The conditional update is
	// atomic, so a token presented twice concurrently burns exactly once.
	consumed, err := s.accountRepo.ConsumeResetToken(claims.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidResetToken
	}

	return s.accountRepo.UpdatePassword(userID, passwordHash)
}

func (s *AuthService) createSession(userID int64) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.accountRepo.CreateSession(sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// splitName divides a display name into first and last parts, falling back
// to the email local part
func splitName(name, email string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.Split(email, "@")[0], ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
