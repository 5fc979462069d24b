package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account that records measurements, optionally assigned to a unit.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Department  *string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	JobTitle    *string    `gorm:"type:varchar(100)" json:"job_title,omitempty"`
	Role        Role       `gorm:"type:varchar(20);not null" json:"role"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	UnitID      *uint      `gorm:"index" json:"unit_id"`
	Unit        *Unit      `gorm:"foreignKey:UnitID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"unit,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Identity state
	AccessFailedCount int        `gorm:"not null;default:0" json:"-"`
	LockoutEnd        *time.Time `json:"-"`
	TwoFactorEnabled  bool       `gorm:"not null;default:false" json:"two_factor_enabled"`
	TokenVersion      string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// BeforeCreate assigns a UUID unless the caller already chose one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name the way exports and responses show it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsLockedOut reports whether a lockout is still running at now.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID               uuid.UUID    `json:"id"`
	Email            string       `json:"email"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	FullName         string       `json:"full_name"`
	Department       *string      `json:"department,omitempty"`
	JobTitle         *string      `json:"job_title,omitempty"`
	Role             Role         `json:"role"`
	Privileges       []string     `json:"privileges"`
	IsActive         bool         `json:"is_active"`
	TwoFactorEnabled bool         `json:"two_factor_enabled"`
	Unit             *UnitSummary `json:"unit,omitempty"`
	UnitID           *uint        `json:"unit_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	LastLoginAt      *time.Time   `json:"last_login_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		FullName:         u.FullName(),
		Department:       u.Department,
		JobTitle:         u.JobTitle,
		Role:             u.Role,
		Privileges:       u.Role.Privileges(),
		IsActive:         u.IsActive,
		TwoFactorEnabled: u.TwoFactorEnabled,
		Unit:             u.Unit.Summary(),
		UnitID:           u.UnitID,
		CreatedAt:        u.CreatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
}
