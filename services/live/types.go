package live

import (
	"database/sql"

	"github.com/greentech-systems/greenhouse-server/internal/database"
)

const (
	EventReading = "reading"
	EventAlert   = "alert"
)

// Event is the message pushed to websocket subscribers whenever a reading
// is stored or an alert is raised.
type Event struct {
	Type       string          `json:"type"`
	Greenhouse GreenhouseInfo  `json:"greenhouse"`
	Reading    *ReadingPayload `json:"reading,omitempty"`
	Issue      *IssuePayload   `json:"issue,omitempty"`
}

type GreenhouseInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ReadingPayload struct {
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Co2            float64 `json:"co2"`
	LightIntensity float64 `json:"light_intensity"`
	SoilPh         float64 `json:"soil_ph"`
	SoilMoisture   float64 `json:"soil_moisture"`
	Timestamp      string  `json:"timestamp"`
}

type IssuePayload struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

func NewReadingEvent(greenhouseName string, reading database.EnvironmentalReading) Event {
	return Event{
		Type: EventReading,
		Greenhouse: GreenhouseInfo{
			ID:   reading.GreenhouseID,
			Name: greenhouseName,
		},
		Reading: &ReadingPayload{
			Temperature:    reading.Temperature,
			Humidity:       reading.Humidity,
			Co2:            reading.Co2,
			LightIntensity: reading.LightIntensity,
			SoilPh:         reading.SoilPh,
			SoilMoisture:   reading.SoilMoisture,
			Timestamp:      formatEventTimestamp(reading.Timestamp),
		},
	}
}

func NewAlertEvent(greenhouseName string, issue database.Issue) Event {
	return Event{
		Type: EventAlert,
		Greenhouse: GreenhouseInfo{
			ID:   issue.GreenhouseID,
			Name: greenhouseName,
		},
		Issue: &IssuePayload{
			ID:          issue.ID,
			Description: issue.Description,
		},
	}
}

func formatEventTimestamp(timestamp sql.NullTime) string {
	if !timestamp.Valid {
		return "N/A"
	}

	return timestamp.Time.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

type Handler struct {
	hub            *Hub
	originPatterns []string
}
