package service

import (
	"errors"
	"strings"

	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailExists = errors.New("email already exists")
	ErrInvalidRole = errors.New("role must be admin or engineer")
)

type UserService interface {
	CreateUser(req *CreateUserRequest) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	DeleteUser(userID uuid.UUID) (bool, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email      string     `json:"email" validate:"required,email,max=255"`
	Password   string     `json:"password" validate:"required,password_policy"`
	FirstName  string     `json:"first_name" validate:"required,notblank,max=100"`
	LastName   string     `json:"last_name" validate:"required,notblank,max=100"`
	Department *string    `json:"department" validate:"omitempty,max=100"`
	JobTitle   *string    `json:"job_title" validate:"omitempty,max=100"`
	Role       model.Role `json:"role" validate:"required"`
	UnitID     *uint      `json:"unit_id"`
}

type UpdateUserRequest struct {
	Email      string     `json:"email" validate:"required,email,max=255"`
	Password   *string    `json:"password,omitempty" validate:"omitempty,password_policy"` // Optional
	FirstName  string     `json:"first_name" validate:"required,notblank,max=100"`
	LastName   string     `json:"last_name" validate:"required,notblank,max=100"`
	Department *string    `json:"department" validate:"omitempty,max=100"`
	JobTitle   *string    `json:"job_title" validate:"omitempty,max=100"`
	Role       model.Role `json:"role" validate:"required"`
	UnitID     *uint      `json:"unit_id"`
	IsActive   *bool      `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	unitRepo repository.UnitRepository
}

func NewUserService(userRepo repository.UserRepository, unitRepo repository.UnitRepository) UserService {
	return &userService{
		userRepo: userRepo,
		unitRepo: unitRepo,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	if err := s.checkUnit(req.UnitID); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:      email,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Department: req.Department,
		JobTitle:   req.JobTitle,
		Role:       req.Role,
		UnitID:     req.UnitID,
		IsActive:   true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(user.ID)
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		exists, err := s.userRepo.EmailExists(email, user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
	}
	if err := s.checkUnit(req.UnitID); err != nil {
		return nil, err
	}

	user.Email = email
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Department = req.Department
	user.JobTitle = req.JobTitle
	user.Role = req.Role
	user.UnitID = req.UnitID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
		// a new password ends existing sessions
		user.TokenVersion = uuid.NewString()
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}

// DeleteUser removes the account. Its measurements are removed with it.
func (s *userService) DeleteUser(userID uuid.UUID) (bool, error) {
	return s.userRepo.Delete(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) checkUnit(unitID *uint) error {
	if unitID == nil {
		return nil
	}
	exists, err := s.unitRepo.Exists(*unitID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnitNotFound
	}
	return nil
}
