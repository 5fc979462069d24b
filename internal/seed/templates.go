package seed

import "github.com/shopspring/decimal"

// Template is one parameter recorded for a unit, with its normal range.
type Template struct {
	Name string
	Unit string
	Min  decimal.Decimal
	Max  decimal.Decimal
}

func tpl(name, unit, min, max string) Template {
	return Template{Name: name, Unit: unit, Min: decimal.RequireFromString(min), Max: decimal.RequireFromString(max)}
}

var unitTemplates = map[string][]Template{
	"PROC-A": {
		tpl("Temperature", "°C", "20", "80"),
		tpl("Pressure", "bar", "1", "10"),
		tpl("Flow Rate", "L/min", "50", "500"),
		tpl("pH Level", "pH", "6.5", "8.5"),
		tpl("Conductivity", "µS/cm", "100", "1000"),
	},
	"QC-LAB": {
		tpl("Viscosity", "cP", "1", "100"),
		tpl("Density", "g/cm³", "0.8", "1.2"),
		tpl("Moisture Content", "%", "0", "15"),
		tpl("Purity", "%", "95", "99.9"),
		tpl("Particle Size", "µm", "10", "500"),
	},
	"MAINT": {
		tpl("Vibration", "mm/s", "0", "10"),
		tpl("Motor Current", "A", "5", "50"),
		tpl("Bearing Temperature", "°C", "30", "70"),
		tpl("Oil Pressure", "bar", "2", "8"),
		tpl("Runtime Hours", "hrs", "0", "8760"),
	},
	"SAFE-ENV": {
		tpl("CO2 Level", "ppm", "300", "1000"),
		tpl("Noise Level", "dB", "40", "85"),
		tpl("Ambient Temperature", "°C", "15", "35"),
		tpl("Humidity", "%", "30", "70"),
		tpl("Air Quality Index", "AQI", "0", "300"),
	},
}

var genericTemplates = []Template{tpl("Generic Parameter", "units", "0", "100")}

// TemplatesFor returns the parameters generated for a unit code.
func TemplatesFor(code string) []Template {
	if ts, ok := unitTemplates[code]; ok {
		return ts
	}
	return genericTemplates
}

// spread is the range a generated value is drawn from: [low, low+width).
type spread struct {
	low, width float64
}

// Typical operating ranges, narrower than the template bounds.
var valueSpreads = map[string]spread{
	"Temperature":         {35, 20},
	"Pressure":            {3.5, 3},
	"Flow Rate":           {200, 100},
	"pH Level":            {6.9, 0.6},
	"Conductivity":        {400, 200},
	"Viscosity":           {15, 20},
	"Density":             {0.95, 0.1},
	"Moisture Content":    {3, 4},
	"Purity":              {98, 1.5},
	"Particle Size":       {50, 100},
	"Vibration":           {0.5, 3},
	"Motor Current":       {20, 10},
	"Bearing Temperature": {45, 10},
	"Oil Pressure":        {4, 2},
	"Runtime Hours":       {0, 8760},
	"CO2 Level":           {300, 200},
	"Noise Level":         {60, 10},
	"Ambient Temperature": {19, 6},
	"Humidity":            {40, 20},
	"Air Quality Index":   {0, 100},
}

var defaultSpread = spread{0, 100}

var canned = []string{
	"Normal operation",
	"Routine measurement",
	"Calibration check completed",
	"Equipment running smoothly",
	"Within acceptable range",
	"Scheduled maintenance performed",
	"Quality control sample",
	"Baseline measurement",
	"Post-maintenance reading",
	"Shift change reading",
}
