package repository

import (
	"errors"
	"testing"
	"time"

	"go-datamonitor/internal/testutil"

	"gorm.io/gorm"
)

func TestUserRepoFindByEmailPreloadsUnit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	unit := testutil.CreateUnit(t, db, "QC-LAB", "Quality Control Lab")
	testutil.CreateUser(t, db, "eng@example.com", &unit.ID)

	user, err := repo.FindByEmail("eng@example.com")
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if user.Unit == nil || user.Unit.Code != "QC-LAB" {
		t.Fatalf("expected unit preloaded, got %+v", user.Unit)
	}

	if _, err := repo.FindByEmail("nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestUserRepoUpdateIgnoresStaleAssociation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	first := testutil.CreateUnit(t, db, "A", "Alpha")
	second := testutil.CreateUnit(t, db, "B", "Beta")
	created := testutil.CreateUser(t, db, "eng@example.com", &first.ID)

	user, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	user.UnitID = &second.ID
	if err := repo.Update(user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reloaded, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UnitID == nil || *reloaded.UnitID != second.ID {
		t.Fatalf("expected unit %d, got %v", second.ID, reloaded.UnitID)
	}
}

func TestUserRepoLoginBookkeeping(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	user := testutil.CreateUser(t, db, "eng@example.com", nil)

	end := time.Now().Add(5 * time.Minute).UTC()
	if err := repo.UpdateLockout(user.ID, 5, &end); err != nil {
		t.Fatalf("record failure failed: %v", err)
	}
	locked, _ := repo.FindByID(user.ID)
	if locked.AccessFailedCount != 5 || !locked.IsLockedOut(time.Now()) {
		t.Fatalf("expected locked user, got count=%d end=%v", locked.AccessFailedCount, locked.LockoutEnd)
	}

	if err := repo.RecordLogin(user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("record login failed: %v", err)
	}
	cleared, _ := repo.FindByID(user.ID)
	if cleared.AccessFailedCount != 0 || cleared.LockoutEnd != nil || cleared.LastLoginAt == nil {
		t.Fatalf("expected cleared lockout and login stamp, got %+v", cleared)
	}
}

func TestUserRepoDeleteReportsExistence(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	user := testutil.CreateUser(t, db, "eng@example.com", nil)

	deleted, err := repo.Delete(user.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	deleted, err = repo.Delete(user.ID)
	if err != nil || deleted {
		t.Fatalf("expected no-op delete, got %v %v", deleted, err)
	}
}
