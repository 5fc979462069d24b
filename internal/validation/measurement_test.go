package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		valid bool
		want  string
	}{
		{"value equal to min is valid", Input{ParameterName: "Level", Value: d("10"), Min: nd("10")}, true, ""},
		{"value just below min", Input{ParameterName: "Level", Value: d("9.9999"), Min: nd("10")}, false, "Value 9.9999 is below minimum allowed value 10"},
		{"value equal to max is valid", Input{ParameterName: "Level", Value: d("20"), Max: nd("20")}, true, ""},
		{"value just above max", Input{ParameterName: "Level", Value: d("20.0001"), Max: nd("20")}, false, "Value 20.0001 is above maximum allowed value 20"},
		{"no bounds", Input{ParameterName: "Level", Value: d("-1000")}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.in)
			if got.IsValid != tt.valid {
				t.Fatalf("expected valid=%v, got %v", tt.valid, got.IsValid)
			}
			if tt.valid {
				if got.Message != nil {
					t.Fatalf("expected nil message, got %q", *got.Message)
				}
				return
			}
			if got.Message == nil || *got.Message != tt.want {
				t.Fatalf("expected message %q, got %v", tt.want, got.Message)
			}
		})
	}
}

func TestCheckTemperatureFloors(t *testing.T) {
	tests := []struct {
		value string
		unit  string
		valid bool
	}{
		{"-273.15", "Celsius", true},
		{"-273.16", "Celsius", false},
		{"-273.16", "degrees celsius", false},
		{"-459.67", "Fahrenheit", true},
		{"-459.68", "FAHRENHEIT", false},
		{"-500", "Kelvin", true}, // no floor for unrecognised scales
	}

	for _, tt := range tests {
		got := Check(Input{ParameterName: "Temperature", Value: d(tt.value), UnitOfMeasure: tt.unit})
		if got.IsValid != tt.valid {
			t.Fatalf("%s %s: expected valid=%v, got %v", tt.value, tt.unit, tt.valid, got.IsValid)
		}
		if !tt.valid && !strings.Contains(*got.Message, "absolute zero") {
			t.Fatalf("expected absolute zero message, got %q", *got.Message)
		}
	}
}

func TestCheckNonNegativeParameters(t *testing.T) {
	got := Check(Input{ParameterName: "Pressure", Value: d("-0.01"), UnitOfMeasure: "bar"})
	if got.IsValid {
		t.Fatalf("expected negative pressure to be invalid")
	}
	if *got.Message != "Pressure cannot be negative" {
		t.Fatalf("unexpected message %q", *got.Message)
	}

	got = Check(Input{ParameterName: "FLOW RATE", Value: d("-1"), UnitOfMeasure: "L/min"})
	if got.IsValid || *got.Message != "Flow rate cannot be negative" {
		t.Fatalf("expected flow rate violation, got %+v", got)
	}

	got = Check(Input{ParameterName: "Pressure", Value: d("0"), UnitOfMeasure: "bar"})
	if !got.IsValid {
		t.Fatalf("zero pressure must be valid")
	}
}

func TestCheckJoinsAllViolations(t *testing.T) {
	got := Check(Input{ParameterName: "pressure", Value: d("-5"), Min: nd("0"), Max: nd("-10")})
	if got.IsValid {
		t.Fatalf("expected invalid")
	}
	parts := strings.Split(*got.Message, MessageSeparator)
	if len(parts) != 3 {
		t.Fatalf("expected 3 violations, got %d: %q", len(parts), *got.Message)
	}
	if parts[2] != "Pressure cannot be negative" {
		t.Fatalf("parameter rule must follow range rules, got %q", parts[2])
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	in := Input{ParameterName: "Temperature", Value: d("-300"), UnitOfMeasure: "celsius", Min: nd("-10")}
	first := Check(in)
	for i := 0; i < 10; i++ {
		again := Check(in)
		if again.IsValid != first.IsValid || *again.Message != *first.Message {
			t.Fatalf("result changed between calls: %q vs %q", *first.Message, *again.Message)
		}
	}
}
