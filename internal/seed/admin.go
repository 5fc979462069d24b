package seed

import (
	"errors"
	"log"
	"strings"

	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"

	"gorm.io/gorm"
)

// AdminUnitCode is the unit the bootstrap admin is assigned to when present.
const AdminUnitCode = "PROC-A"

// Defaults creates the default units and, when no users exist yet, the
// admin account. Safe to call on every start.
func Defaults(units repository.UnitRepository, users repository.UserRepository, email, password string) error {
	if err := units.SeedDefaults(); err != nil {
		return err
	}

	count, err := users.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	department := "Engineering"
	jobTitle := "System Administrator"
	admin := &model.User{
		Email:      strings.ToLower(strings.TrimSpace(email)),
		FirstName:  "Admin",
		LastName:   "User",
		Department: &department,
		JobTitle:   &jobTitle,
		Role:       model.RoleAdmin,
		IsActive:   true,
	}

	unit, err := units.FindByCode(AdminUnitCode)
	switch {
	case err == nil:
		admin.UnitID = &unit.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := users.Create(admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", admin.Email)
	return nil
}
