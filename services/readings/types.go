package readings

import (
	"context"
	"database/sql"

	"github.com/greentech-systems/greenhouse-server/internal/checks"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/services/live"
)

type ReadingStore interface {
	GetGreenhouse(ctx context.Context, id int64) (database.Greenhouse, error)
	RecordReading(ctx context.Context, arg database.CreateReadingParams, issueDescription string) (database.EnvironmentalReading, *database.Issue, error)
	CountManualReadings(ctx context.Context) (int64, error)
	ListManualReadings(ctx context.Context, arg database.ListManualReadingsParams) ([]database.ListManualReadingsRow, error)
	ListAllManualReadings(ctx context.Context) ([]database.ListAllManualReadingsRow, error)
	ListManualReadingsByGreenhouse(ctx context.Context, greenhouseID int64) ([]database.ListManualReadingsByGreenhouseRow, error)
	ListEmployeesByGreenhouse(ctx context.Context, greenhouseID sql.NullInt64) ([]database.Employee, error)
	GetLatestReading(ctx context.Context, greenhouseID int64) (database.EnvironmentalReading, error)
}

// Broadcaster pushes an event to the live websocket subscribers.
type Broadcaster interface {
	Broadcast(event live.Event)
}

// Mailer is the slice of the notifier the readings service needs.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, subject, body string, recipients ...string) error
}

func databaseManualReadingToView(row database.ListManualReadingsRow) web.ReadingView {
	return web.ReadingView{
		GreenhouseID:   row.GreenhouseID,
		GreenhouseName: row.GreenhouseName,
		Temperature:    row.Temperature,
		Humidity:       row.Humidity,
		Co2:            row.Co2,
		LightIntensity: row.LightIntensity,
		SoilPh:         row.SoilPh,
		SoilMoisture:   row.SoilMoisture,
		Timestamp:      row.Timestamp,
	}
}

func databaseAllManualReadingToView(row database.ListAllManualReadingsRow) web.ReadingView {
	return web.ReadingView{
		GreenhouseID:   row.GreenhouseID,
		GreenhouseName: row.GreenhouseName,
		Temperature:    row.Temperature,
		Humidity:       row.Humidity,
		Co2:            row.Co2,
		LightIntensity: row.LightIntensity,
		SoilPh:         row.SoilPh,
		SoilMoisture:   row.SoilMoisture,
		Timestamp:      row.Timestamp,
	}
}

func databaseGreenhouseReadingToView(row database.ListManualReadingsByGreenhouseRow) web.ReadingView {
	return web.ReadingView{
		GreenhouseID:   row.GreenhouseID,
		GreenhouseName: row.GreenhouseName,
		Temperature:    row.Temperature,
		Humidity:       row.Humidity,
		Co2:            row.Co2,
		LightIntensity: row.LightIntensity,
		SoilPh:         row.SoilPh,
		SoilMoisture:   row.SoilMoisture,
		Timestamp:      row.Timestamp,
	}
}

type inputFormPage struct {
	Frame          web.Frame
	GreenhouseID   int64
	GreenhouseName string
}

type historicalDataPage struct {
	Frame      web.Frame
	Rows       []web.ReadingView
	Pagination web.Pagination
}

type latestDataPayload struct {
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Co2            float64 `json:"co2"`
	LightIntensity float64 `json:"light_intensity"`
	SoilPh         float64 `json:"soil_ph"`
	SoilMoisture   float64 `json:"soil_moisture"`
	Timestamp      string  `json:"timestamp"`
}

// latestDataResponse keeps data without omitempty so a greenhouse with no
// readings serializes it as an explicit null.
type latestDataResponse struct {
	Success        bool               `json:"success"`
	GreenhouseName string             `json:"greenhouse_name"`
	Location       string             `json:"location"`
	Data           *latestDataPayload `json:"data"`
}

type Handler struct {
	store       ReadingStore
	mailer      Mailer
	broadcaster Broadcaster
	renderer    *web.Renderer
	thresholds  checks.Thresholds
}
