// Package checks evaluates environmental readings against the acceptable
// operating ranges of a greenhouse and builds the alert text for readings
// that fall outside them.
package checks

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive acceptable band for a single metric.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Thresholds holds the acceptable range for every metric a reading carries.
type Thresholds struct {
	Temperature    Range `json:"temperature"`
	Humidity       Range `json:"humidity"`
	Co2            Range `json:"co2"`
	LightIntensity Range `json:"light_intensity"`
	SoilPh         Range `json:"soil_ph"`
	SoilMoisture   Range `json:"soil_moisture"`
}

// DefaultThresholds returns the stock operating ranges for a greenhouse.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Temperature:    Range{Min: 20, Max: 25},
		Humidity:       Range{Min: 40, Max: 60},
		Co2:            Range{Min: 400, Max: 1000},
		LightIntensity: Range{Min: 1000, Max: 10000},
		SoilPh:         Range{Min: 6.0, Max: 7.0},
		SoilMoisture:   Range{Min: 30, Max: 60},
	}
}

// Normals are the values logged as a synthetic 'resolution' reading when an
// issue is marked resolved.
type Normals struct {
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Co2            float64 `json:"co2"`
	LightIntensity float64 `json:"light_intensity"`
	SoilPh         float64 `json:"soil_ph"`
	SoilMoisture   float64 `json:"soil_moisture"`
}

// DefaultNormals returns the values considered a healthy environmental state.
func DefaultNormals() Normals {
	return Normals{
		Temperature:    22.5,
		Humidity:       50.0,
		Co2:            700.0,
		LightIntensity: 5000.0,
		SoilPh:         6.5,
		SoilMoisture:   45.0,
	}
}

// Reading carries the six measured values of a single entry.
type Reading struct {
	Temperature    float64
	Humidity       float64
	Co2            float64
	LightIntensity float64
	SoilPh         float64
	SoilMoisture   float64
}

// Violations returns one message per metric outside its acceptable range.
// The slice is empty when the reading is healthy.
func (t Thresholds) Violations(r Reading) []string {
	var violations []string

	if !t.Temperature.Contains(r.Temperature) {
		violations = append(violations, fmt.Sprintf("Temperature %s°C is out of range (%s-%s°C).",
			formatValue(r.Temperature), formatValue(t.Temperature.Min), formatValue(t.Temperature.Max)))
	}
	if !t.Humidity.Contains(r.Humidity) {
		violations = append(violations, fmt.Sprintf("Humidity %s%% is out of range (%s-%s%%).",
			formatValue(r.Humidity), formatValue(t.Humidity.Min), formatValue(t.Humidity.Max)))
	}
	if !t.Co2.Contains(r.Co2) {
		violations = append(violations, fmt.Sprintf("CO2 %s ppm is out of range (%s-%s ppm).",
			formatValue(r.Co2), formatValue(t.Co2.Min), formatValue(t.Co2.Max)))
	}
	if !t.LightIntensity.Contains(r.LightIntensity) {
		violations = append(violations, fmt.Sprintf("Light Intensity %s lux is out of range (%s-%s lux).",
			formatValue(r.LightIntensity), formatValue(t.LightIntensity.Min), formatValue(t.LightIntensity.Max)))
	}
	if !t.SoilPh.Contains(r.SoilPh) {
		// pH bounds read better with the decimal kept: "6.0-7.0"
		violations = append(violations, fmt.Sprintf("Soil pH %s is out of range (%.1f-%.1f).",
			formatValue(r.SoilPh), t.SoilPh.Min, t.SoilPh.Max))
	}
	if !t.SoilMoisture.Contains(r.SoilMoisture) {
		violations = append(violations, fmt.Sprintf("Soil Moisture %s%% is out of range (%s-%s%%).",
			formatValue(r.SoilMoisture), formatValue(t.SoilMoisture.Min), formatValue(t.SoilMoisture.Max)))
	}

	return violations
}

// AlertDescription assembles the issue description logged and mailed when a
// reading violates one or more thresholds.
func AlertDescription(greenhouseName, location string, violations []string) string {
	return fmt.Sprintf("Alert for Greenhouse '%s' (%s):\n- %s",
		greenhouseName, location, strings.Join(violations, "\n- "))
}

// formatValue renders a measurement the way it was entered, without padding
// it to a fixed number of decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
