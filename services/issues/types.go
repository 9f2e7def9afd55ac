package issues

import (
	"context"
	"database/sql"
	"time"

	"github.com/greentech-systems/greenhouse-server/internal/checks"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/services/live"
)

type IssueStore interface {
	ListIssues(ctx context.Context) ([]database.ListIssuesRow, error)
	ListIssuesByGreenhouse(ctx context.Context, greenhouseID int64) ([]database.ListIssuesByGreenhouseRow, error)
	GetIssue(ctx context.Context, id int64) (database.Issue, error)
	GetGreenhouse(ctx context.Context, id int64) (database.Greenhouse, error)
	ResolveIssueWithReading(ctx context.Context, issueID int64, resolvedAt time.Time, reading database.CreateReadingParams) (database.Issue, database.EnvironmentalReading, error)
}

type Broadcaster interface {
	Broadcast(event live.Event)
}

const (
	statusOngoing    = "Ongoing"
	sourceResolution = "resolution"
	timeDisplay      = "2006-01-02 15:04:05"
)

type issueRow struct {
	ID              int64
	GreenhouseName  string
	Description     string
	Status          string
	CreatedDisplay  string
	ResolvedDisplay string
	Ongoing         bool
	CanResolve      bool
}

func newIssueRow(id int64, greenhouseName, description, status string, createdAt time.Time, resolvedAt sql.NullTime, canResolve bool) issueRow {
	row := issueRow{
		ID:              id,
		GreenhouseName:  greenhouseName,
		Description:     description,
		Status:          status,
		CreatedDisplay:  createdAt.Format(timeDisplay),
		ResolvedDisplay: "N/A",
		Ongoing:         status == statusOngoing,
		CanResolve:      canResolve,
	}

	if resolvedAt.Valid {
		row.ResolvedDisplay = resolvedAt.Time.Format(timeDisplay)
	}

	return row
}

type issuesPage struct {
	Frame  web.Frame
	Issues []issueRow
}

type Handler struct {
	store       IssueStore
	broadcaster Broadcaster
	renderer    *web.Renderer
	normals     checks.Normals
}
