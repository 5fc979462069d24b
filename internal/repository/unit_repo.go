package repository

import (
	"go-datamonitor/internal/model"

	"gorm.io/gorm"
)

type UnitRepository interface {
	WithTx(tx *gorm.DB) UnitRepository
	FindAll() ([]model.Unit, error)
	FindActive() ([]model.Unit, error)
	FindByID(id uint) (*model.Unit, error)
	FindByCode(code string) (*model.Unit, error)
	Exists(id uint) (bool, error)
	CodeExists(code string, excludeID uint) (bool, error)
	Create(unit *model.Unit) error
	Update(unit *model.Unit) error
	HasDependents(id uint) (bool, error)
	Deactivate(id uint, actor string) error
	Delete(id uint) error
	Count() (int64, error)
	SeedDefaults() error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) WithTx(tx *gorm.DB) UnitRepository {
	return &unitRepo{tx}
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindActive() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(id uint) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) FindByCode(code string) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.Where("code = ?", code).First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Unit{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CodeExists reports whether a unit other than excludeID already uses code.
// Pass 0 to check every unit.
func (r *unitRepo) CodeExists(code string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Unit{}).Where("code = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *unitRepo) Create(unit *model.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) Update(unit *model.Unit) error {
	return r.db.Save(unit).Error
}

// HasDependents reports whether any measurement or user still references the unit.
func (r *unitRepo) HasDependents(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Measurement{}).Where("unit_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&model.User{}).Where("unit_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *unitRepo) Deactivate(id uint, actor string) error {
	return r.db.Model(&model.Unit{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_by": actor}).Error
}

func (r *unitRepo) Delete(id uint) error {
	return r.db.Delete(&model.Unit{}, id).Error
}

func (r *unitRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Unit{}).Count(&count).Error
	return count, err
}

// SeedDefaults creates the default units when the table is empty.
func (r *unitRepo) SeedDefaults() error {
	count, err := r.Count()
	if err != nil || count > 0 {
		return err
	}
	units := make([]model.Unit, len(model.DefaultUnits))
	copy(units, model.DefaultUnits)
	for i := range units {
		units[i].Stamp(model.SystemActor)
	}
	return r.db.Create(&units).Error
}
