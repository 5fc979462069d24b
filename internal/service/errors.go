package service

import (
	"errors"
	"fmt"

	"go-datamonitor/pkg/validator"
)

var (
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
)

func checkInput(req interface{}) error {
	if err := validator.Check(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
