package dashboard

import (
	"context"

	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
)

type DashboardStore interface {
	ListGreenhouses(ctx context.Context) ([]database.Greenhouse, error)
	ListGreenhouseIDsWithOngoingIssues(ctx context.Context) ([]int64, error)
	GetLatestReading(ctx context.Context, greenhouseID int64) (database.EnvironmentalReading, error)
	CountEmployees(ctx context.Context) (int64, error)
	CountResolvedIssues(ctx context.Context) (int64, error)
	GetLatestOngoingIssueForGreenhouse(ctx context.Context, greenhouseID int64) (database.Issue, error)
}

type greenhouseCard struct {
	ID              int64
	Name            string
	Location        string
	HasOngoingIssue bool
	StatusText      string
	StatusClass     string
	Latest          *web.ReadingView
}

func databaseGreenhouseToCard(greenhouse database.Greenhouse, hasOngoingIssue bool, latest *web.ReadingView) greenhouseCard {
	card := greenhouseCard{
		ID:              greenhouse.ID,
		Name:            greenhouse.Name,
		Location:        greenhouse.Location,
		HasOngoingIssue: hasOngoingIssue,
		StatusText:      "Normal",
		StatusClass:     "normal",
		Latest:          latest,
	}

	if hasOngoingIssue {
		card.StatusText = "Issue Detected"
		card.StatusClass = "issue-detected"
	}

	return card
}

func databaseReadingToView(reading database.EnvironmentalReading) web.ReadingView {
	return web.ReadingView{
		GreenhouseID:   reading.GreenhouseID,
		Temperature:    reading.Temperature,
		Humidity:       reading.Humidity,
		Co2:            reading.Co2,
		LightIntensity: reading.LightIntensity,
		SoilPh:         reading.SoilPh,
		SoilMoisture:   reading.SoilMoisture,
		Timestamp:      reading.Timestamp,
	}
}

type assignedIssue struct {
	ID             int64
	GreenhouseName string
	Description    string
}

type dashboardPage struct {
	Frame              web.Frame
	Greenhouses        []greenhouseCard
	EmployeeCount      int64
	OngoingIssueCount  int
	ResolvedIssueCount int64
	AssignedIssue      *assignedIssue
}

type Handler struct {
	store    DashboardStore
	renderer *web.Renderer
}
