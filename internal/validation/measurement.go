// Package validation holds the range and physical-sanity checks applied to
// every measurement before it is stored.
package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Input is the subset of a measurement the checks look at.
type Input struct {
	ParameterName string
	Value         decimal.Decimal
	UnitOfMeasure string
	Min           decimal.NullDecimal
	Max           decimal.NullDecimal
}

// Result is the derived validity of a measurement. Message is nil iff IsValid.
type Result struct {
	IsValid bool
	Message *string
}

// MessageSeparator joins multiple violations into one message.
const MessageSeparator = "; "

var (
	zero            = decimal.Zero
	celsiusFloor    = decimal.RequireFromString("-273.15")
	fahrenheitFloor = decimal.RequireFromString("-459.67")
)

// Check applies every rule and collects all violations. It has no side
// effects and returns the same Result for the same Input.
func Check(in Input) Result {
	var violations []string

	if in.Min.Valid && in.Value.LessThan(in.Min.Decimal) {
		violations = append(violations, fmt.Sprintf("Value %s is below minimum allowed value %s", in.Value, in.Min.Decimal))
	}
	if in.Max.Valid && in.Value.GreaterThan(in.Max.Decimal) {
		violations = append(violations, fmt.Sprintf("Value %s is above maximum allowed value %s", in.Value, in.Max.Decimal))
	}

	unit := strings.ToLower(in.UnitOfMeasure)
	switch strings.ToLower(in.ParameterName) {
	case "pressure":
		if in.Value.LessThan(zero) {
			violations = append(violations, "Pressure cannot be negative")
		}
	case "temperature":
		if strings.Contains(unit, "celsius") && in.Value.LessThan(celsiusFloor) {
			violations = append(violations, "Temperature cannot be below absolute zero (-273.15°C)")
		}
		if strings.Contains(unit, "fahrenheit") && in.Value.LessThan(fahrenheitFloor) {
			violations = append(violations, "Temperature cannot be below absolute zero (-459.67°F)")
		}
	case "flow rate":
		if in.Value.LessThan(zero) {
			violations = append(violations, "Flow rate cannot be negative")
		}
	}

	if len(violations) == 0 {
		return Result{IsValid: true}
	}
	msg := strings.Join(violations, MessageSeparator)
	return Result{IsValid: false, Message: &msg}
}
