package repository

import (
	"testing"
	"time"

	"ellarises/internal/database"
	"ellarises/internal/models"
	"ellarises/internal/security"
)

func TestCreateAccountFirstUserBecomesManager(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	first, err := repo.CreateAccount("first@ellarises.org", "hash", models.RoleUser, "First", "User")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if first.Role != models.RoleManager {
		t.Errorf("First account role = %q, want Manager", first.Role)
	}

	second, err := repo.CreateAccount("second@ellarises.org", "hash", models.RoleUser, "Second", "User")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if second.Role != models.RoleUser {
		t.Errorf("Second account role = %q, want User", second.Role)
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	if _, err := repo.CreateAccount("dup@ellarises.org", "hash", models.RoleUser, "", ""); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := repo.CreateAccount("dup@ellarises.org", "hash", models.RoleUser, "", "")
	if err == nil {
		t.Fatal("Expected an error for a duplicate email")
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("Duplicate email should be a unique violation, got: %v", err)
	}
}

func TestGetAccountByEmail(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	created, err := repo.CreateAccount("staff@ellarises.org", "hash", models.RoleUser, "Staff", "Member")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	found, err := repo.GetAccountByEmail("staff@ellarises.org")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if found == nil {
		t.Fatal("GetAccountByEmail returned nil for an existing account")
	}
	if found.ID != created.ID || found.FirstName != "Staff" {
		t.Errorf("Got account %+v, want ID %d FirstName Staff", found, created.ID)
	}

	missing, err := repo.GetAccountByEmail("nobody@ellarises.org")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetAccountByEmail for a missing email should return nil, got %+v", missing)
	}
}

func TestListAccountsSearch(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	if _, err := repo.CreateAccount("ana@ellarises.org", "hash", models.RoleUser, "Ana", "Reyes"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if _, err := repo.CreateAccount("ben@ellarises.org", "hash", models.RoleUser, "Ben", "Ortiz"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	all, err := repo.ListAccounts("")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListAccounts returned %d accounts, want 2", len(all))
	}

	matched, err := repo.ListAccounts("reyes")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(matched) != 1 || matched[0].Email != "ana@ellarises.org" {
		t.Errorf("ListAccounts(reyes) = %+v, want only ana@ellarises.org", matched)
	}
}

func TestUpdateAccountAndPassword(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	acct, err := repo.CreateAccount("staff@ellarises.org", "old-hash", models.RoleUser, "Staff", "Member")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if err := repo.UpdateAccount(acct.ID, "renamed@ellarises.org", models.RoleManager, "Re", "Named"); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}
	if err := repo.UpdatePassword(acct.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	updated, err := repo.GetAccountByID(acct.ID)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if updated.Email != "renamed@ellarises.org" || updated.Role != models.RoleManager {
		t.Errorf("Account not updated: %+v", updated)
	}
	if updated.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q, want new-hash", updated.PasswordHash)
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	acct, err := repo.CreateAccount("staff@ellarises.org", "hash", models.RoleUser, "", "")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	sessionID := security.GenerateSessionID()
	created, err := repo.CreateSession(sessionID, acct.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.ID != sessionID || created.UserID != acct.ID {
		t.Errorf("Created session %+v does not match inputs", created)
	}

	found, err := repo.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if found == nil || found.UserID != acct.ID {
		t.Fatalf("GetSession returned %+v, want session for user %d", found, acct.ID)
	}
	if found.IsExpired() {
		t.Error("A session expiring in an hour should not be expired")
	}

	if err := repo.DeleteSession(sessionID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	gone, err := repo.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if gone != nil {
		t.Errorf("GetSession after delete returned %+v, want nil", gone)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	acct, err := repo.CreateAccount("staff@ellarises.org", "hash", models.RoleUser, "", "")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	expired := security.GenerateSessionID()
	live := security.GenerateSessionID()
	if _, err := repo.CreateSession(expired, acct.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := repo.CreateSession(live, acct.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := repo.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	if s, _ := repo.GetSession(expired); s != nil {
		t.Error("Expired session should have been deleted")
	}
	if s, _ := repo.GetSession(live); s == nil {
		t.Error("Live session should have survived the sweep")
	}
}

func TestResetTokenBookkeeping(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	acct, err := repo.CreateAccount("staff@ellarises.org", "hash", models.RoleUser, "", "")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	tokenID := security.GenerateSessionID()
	if err := repo.RecordResetToken(tokenID, acct.ID); err != nil {
		t.Fatalf("RecordResetToken failed: %v", err)
	}

	consumed, err := repo.ConsumeResetToken(tokenID)
	if err != nil {
		t.Fatalf("ConsumeResetToken failed: %v", err)
	}
	if !consumed {
		t.Error("A fresh token should consume successfully")
	}

	consumed, err = repo.ConsumeResetToken(tokenID)
	if err != nil {
		t.Fatalf("ConsumeResetToken failed: %v", err)
	}
	if consumed {
		t.Error("A spent token should not consume a second time")
	}

	consumed, err = repo.ConsumeResetToken(security.GenerateSessionID())
	if err != nil {
		t.Fatalf("ConsumeResetToken failed: %v", err)
	}
	if consumed {
		t.Error("A token that was never issued should not consume")
	}
}

func TestOAuthAccountLinking(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	acct, err := repo.CreateAccount("staff@ellarises.org", "hash", models.RoleUser, "", "")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if found, _ := repo.GetAccountByOAuth("google", "subject-1"); found != nil {
		t.Fatalf("Unlinked OAuth lookup returned %+v, want nil", found)
	}

	if err := repo.LinkOAuthProvider(acct.ID, "google", "subject-1"); err != nil {
		t.Fatalf("LinkOAuthProvider failed: %v", err)
	}

	found, err := repo.GetAccountByOAuth("google", "subject-1")
	if err != nil {
		t.Fatalf("GetAccountByOAuth failed: %v", err)
	}
	if found == nil || found.ID != acct.ID {
		t.Errorf("GetAccountByOAuth = %+v, want account %d", found, acct.ID)
	}
}
