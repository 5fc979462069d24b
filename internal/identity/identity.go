// Package identity checks credentials and tracks failed sign-in attempts.
package identity

import (
	"errors"
	"time"

	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"

	"gorm.io/gorm"
)

// Outcome is the result of a sign-in attempt.
type Outcome int

const (
	InvalidCredentials Outcome = iota
	Success
	LockedOut
	NotAllowed
	RequiresTwoFactor
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case LockedOut:
		return "locked_out"
	case NotAllowed:
		return "not_allowed"
	case RequiresTwoFactor:
		return "requires_two_factor"
	default:
		return "invalid_credentials"
	}
}

// Message is the text shown to the person signing in.
func (o Outcome) Message() string {
	switch o {
	case Success:
		return "Signed in"
	case LockedOut:
		return "Account is locked out"
	case NotAllowed:
		return "Login not allowed"
	case RequiresTwoFactor:
		return "Two-factor authentication required"
	default:
		return "Invalid email or password"
	}
}

type Options struct {
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	Now               func() time.Time
}

type Provider struct {
	users repository.UserRepository
	opts  Options
}

func NewProvider(users repository.UserRepository, opts Options) *Provider {
	if opts.MaxFailedAttempts <= 0 {
		opts.MaxFailedAttempts = 5
	}
	if opts.LockoutDuration <= 0 {
		opts.LockoutDuration = 5 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Provider{users: users, opts: opts}
}

// SignIn verifies email and password. The user is returned for every
// outcome except InvalidCredentials on an unknown email.
func (p *Provider) SignIn(email, password string) (Outcome, *model.User, error) {
	user, err := p.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvalidCredentials, nil, nil
		}
		return InvalidCredentials, nil, err
	}

	now := p.opts.Now().UTC()
	if !user.IsActive {
		return NotAllowed, user, nil
	}
	if user.IsLockedOut(now) {
		return LockedOut, user, nil
	}

	if !user.CheckPassword(password) {
		return p.recordFailure(user, now)
	}

	user.AccessFailedCount = 0
	user.LockoutEnd = nil
	if user.TwoFactorEnabled {
		if err := p.users.UpdateLockout(user.ID, 0, nil); err != nil {
			return InvalidCredentials, nil, err
		}
		return RequiresTwoFactor, user, nil
	}
	if err := p.users.RecordLogin(user.ID, now); err != nil {
		return InvalidCredentials, nil, err
	}
	user.LastLoginAt = &now
	return Success, user, nil
}

// reaching the limit starts a lockout and restarts the count
func (p *Provider) recordFailure(user *model.User, now time.Time) (Outcome, *model.User, error) {
	failed := user.AccessFailedCount + 1
	var end *time.Time
	outcome := InvalidCredentials
	if failed >= p.opts.MaxFailedAttempts {
		t := now.Add(p.opts.LockoutDuration)
		end = &t
		failed = 0
		outcome = LockedOut
	}
	if err := p.users.UpdateLockout(user.ID, failed, end); err != nil {
		return InvalidCredentials, nil, err
	}
	user.AccessFailedCount = failed
	user.LockoutEnd = end
	return outcome, user, nil
}
