package service

import (
	"errors"
	"strings"

	"go-datamonitor/internal/identity"
	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("login not allowed")
	ErrLockedOut          = errors.New("account is locked out")
	ErrTwoFactorRequired  = errors.New("two-factor authentication required")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Me(userID uuid.UUID) (*model.UserResponse, error)
	ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password_policy"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"`
}

var outcomeErrors = map[identity.Outcome]error{
	identity.InvalidCredentials: ErrInvalidCredentials,
	identity.NotAllowed:         ErrUserInactive,
	identity.LockedOut:          ErrLockedOut,
	identity.RequiresTwoFactor:  ErrTwoFactorRequired,
}

type authService struct {
	userRepo repository.UserRepository
	provider *identity.Provider
	metrics  *metrics.Metrics
}

func NewAuthService(userRepo repository.UserRepository, provider *identity.Provider, m *metrics.Metrics) AuthService {
	return &authService{
		userRepo: userRepo,
		provider: provider,
		metrics:  m,
	}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	outcome, user, err := s.provider.SignIn(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return nil, err
	}
	s.metrics.LoginAttempt(outcome.String())
	if outcome != identity.Success {
		return nil, outcomeErrors[outcome]
	}

	// Single session: a new version invalidates tokens issued before.
	version := uuid.NewString()
	if err := s.userRepo.UpdateTokenVersion(user.ID, version); err != nil {
		return nil, errors.New("failed to update session")
	}

	privileges := user.Role.Privileges()
	token, err := jwt.Sign(jwt.Session{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.FullName(),
		Role:         string(user.Role),
		Privileges:   privileges,
		TokenVersion: version,
	})
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: privileges,
	}, nil
}

func (s *authService) Me(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := checkInput(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}
