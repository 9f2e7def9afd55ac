package web

import (
	"database/sql"
	"fmt"
	"strconv"
)

// ReadingView formats one environmental reading for display. The greenhouse
// name and the timestamp are optional; the measurements are always present.
// Rendering the same view twice yields identical output.
type ReadingView struct {
	GreenhouseID   int64
	GreenhouseName sql.NullString
	Temperature    float64
	Humidity       float64
	Co2            float64
	LightIntensity float64
	SoilPh         float64
	SoilMoisture   float64
	Timestamp      sql.NullTime
}

// GreenhouseLabel is the greenhouse's name, or the raw id when the
// greenhouse row is gone.
func (v ReadingView) GreenhouseLabel() string {
	if v.GreenhouseName.Valid {
		return v.GreenhouseName.String
	}

	return strconv.FormatInt(v.GreenhouseID, 10)
}

func (v ReadingView) TemperatureDisplay() string { return fmt.Sprintf("%.2f", v.Temperature) }

func (v ReadingView) HumidityDisplay() string { return fmt.Sprintf("%.1f", v.Humidity) }

func (v ReadingView) Co2Display() string { return fmt.Sprintf("%.1f", v.Co2) }

func (v ReadingView) LightIntensityDisplay() string { return fmt.Sprintf("%.0f", v.LightIntensity) }

func (v ReadingView) SoilPhDisplay() string { return fmt.Sprintf("%.2f", v.SoilPh) }

func (v ReadingView) SoilMoistureDisplay() string { return fmt.Sprintf("%.1f", v.SoilMoisture) }

// TimestampDisplay renders the recording time, or N/A when it is absent.
func (v ReadingView) TimestampDisplay() string {
	if !v.Timestamp.Valid {
		return "N/A"
	}

	return v.Timestamp.Time.Format("2006-01-02 15:04:05")
}
