package repository

import (
	"time"

	"go-datamonitor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	EmailExists(email string, excludeID uuid.UUID) (bool, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(id uuid.UUID) (bool, error)
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(userID uuid.UUID, version string) error
	RecordLogin(userID uuid.UUID, at time.Time) error
	UpdateLockout(userID uuid.UUID, failedCount int, lockoutEnd *time.Time) error
	Count() (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Unit").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Unit").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Unit").Order("last_name ASC, first_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) EmailExists(email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.User{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

// Update saves every column. A preloaded Unit is ignored so UnitID wins.
func (r *userRepo) Update(user *model.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

func (r *userRepo) Delete(id uuid.UUID) (bool, error) {
	res := r.db.Delete(&model.User{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error
}

// RecordLogin clears the failure counter and stamps the login time.
func (r *userRepo) RecordLogin(userID uuid.UUID, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"access_failed_count": 0,
		"lockout_end":         nil,
		"last_login_at":       at,
	}).Error
}

func (r *userRepo) UpdateLockout(userID uuid.UUID, failedCount int, lockoutEnd *time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"access_failed_count": failedCount,
		"lockout_end":         lockoutEnd,
	}).Error
}

func (r *userRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}
