package service

import (
	"errors"
	"testing"
	"time"

	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/testutil"

	"gorm.io/gorm"
)

func newUnitService(t *testing.T) (UnitService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewUnitService(repository.NewUnitRepo(db), db), db
}

func TestUnitServiceCreateRejectsDuplicateCode(t *testing.T) {
	svc, _ := newUnitService(t)

	unit, err := svc.Create(&UnitRequest{Name: "Process A", Code: "PROC-A"}, "admin")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !unit.IsActive || unit.CreatedBy != "admin" {
		t.Fatalf("unexpected unit: %+v", unit)
	}

	if _, err := svc.Create(&UnitRequest{Name: "Other", Code: "PROC-A"}, "admin"); !errors.Is(err, ErrUnitCodeExists) {
		t.Fatalf("expected ErrUnitCodeExists, got %v", err)
	}
	// codes compare exactly
	if _, err := svc.Create(&UnitRequest{Name: "Lower", Code: "proc-a"}, "admin"); err != nil {
		t.Fatalf("expected different-case code to be accepted, got %v", err)
	}
}

func TestUnitServiceCreateValidatesInput(t *testing.T) {
	svc, _ := newUnitService(t)

	if _, err := svc.Create(&UnitRequest{Name: "  ", Code: "X"}, "admin"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUnitServiceUpdate(t *testing.T) {
	svc, db := newUnitService(t)
	a := testutil.CreateUnit(t, db, "A", "Alpha")
	testutil.CreateUnit(t, db, "B", "Beta")

	inactive := false
	updated, err := svc.Update(a.ID, &UnitRequest{Name: "Alpha 2", Code: "A", IsActive: &inactive}, "admin")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Alpha 2" || updated.IsActive || updated.UpdatedBy != "admin" {
		t.Fatalf("unexpected unit: %+v", updated)
	}

	if _, err := svc.Update(a.ID, &UnitRequest{Name: "Alpha", Code: "B"}, "admin"); !errors.Is(err, ErrUnitCodeExists) {
		t.Fatalf("expected ErrUnitCodeExists, got %v", err)
	}
	if _, err := svc.Update(999, &UnitRequest{Name: "Ghost", Code: "G"}, "admin"); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestUnitServiceDelete(t *testing.T) {
	svc, db := newUnitService(t)
	empty := testutil.CreateUnit(t, db, "E", "Empty")
	used := testutil.CreateUnit(t, db, "U", "Used")
	user := testutil.CreateUser(t, db, "eng@example.com", nil)
	testutil.CreateMeasurement(t, db, user.ID, used.ID, "Pressure", "1", true, time.Now())

	ok, err := svc.Delete(empty.ID, "admin")
	if err != nil || !ok {
		t.Fatalf("expected hard delete, got %v %v", ok, err)
	}
	if _, err := svc.GetByID(empty.ID); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected unit gone, got %v", err)
	}

	ok, err = svc.Delete(used.ID, "admin")
	if err != nil || !ok {
		t.Fatalf("expected soft delete, got %v %v", ok, err)
	}
	kept, err := svc.GetByID(used.ID)
	if err != nil {
		t.Fatalf("expected unit kept, got %v", err)
	}
	if kept.IsActive {
		t.Fatalf("expected unit deactivated")
	}

	ok, err = svc.Delete(12345, "admin")
	if err != nil || ok {
		t.Fatalf("expected false for missing unit, got %v %v", ok, err)
	}
}

func TestUnitServiceGetByCode(t *testing.T) {
	svc, db := newUnitService(t)
	testutil.CreateUnit(t, db, "MAINT", "Maintenance")

	unit, err := svc.GetByCode("MAINT")
	if err != nil || unit.Name != "Maintenance" {
		t.Fatalf("unexpected result: %+v %v", unit, err)
	}
	if _, err := svc.GetByCode("NOPE"); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}
}
