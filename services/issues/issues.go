// Package issues lists raised alerts and lets an authorized employee mark
// them resolved, logging a normal reading in the same step.
package issues

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/checks"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/services/live"
	"github.com/samber/lo"
)

func NewHandler(store IssueStore, broadcaster Broadcaster, renderer *web.Renderer, normals checks.Normals) *Handler {
	h := Handler{
		store:       store,
		broadcaster: broadcaster,
		renderer:    renderer,
		normals:     normals,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /issues", auth.RequireLogin(http.HandlerFunc(h.handlerIssuesGet)))
	mux.Handle("POST /issue/resolve/{issueID}", auth.RequireLogin(http.HandlerFunc(h.handlerIssueResolvePost)))
}

func (h *Handler) handlerIssuesGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerIssuesGet")
	defer slog.Debug("<<handlerIssuesGet")

	employee, _ := auth.CurrentEmployee(request.Context())

	page := issuesPage{
		Frame: web.NewFrame(writer, request, "Issues"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	var err error
	switch {
	case employee.IsAdmin:
		var rows []database.ListIssuesRow
		rows, err = h.store.ListIssues(request.Context())
		page.Issues = lo.Map(rows, func(row database.ListIssuesRow, _ int) issueRow {
			return newIssueRow(row.ID, row.GreenhouseName, row.Description, row.Status,
				row.CreatedAt, row.ResolvedAt, h.canResolve(employee, row.GreenhouseID))
		})

	case employee.GreenhouseID.Valid:
		var rows []database.ListIssuesByGreenhouseRow
		rows, err = h.store.ListIssuesByGreenhouse(request.Context(), employee.GreenhouseID.Int64)
		page.Issues = lo.Map(rows, func(row database.ListIssuesByGreenhouseRow, _ int) issueRow {
			return newIssueRow(row.ID, row.GreenhouseName, row.Description, row.Status,
				row.CreatedAt, row.ResolvedAt, h.canResolve(employee, row.GreenhouseID))
		})

	default:
		page.Frame.Flash(web.FlashWarning, "You are not assigned to a greenhouse to view issues.")
	}

	if err != nil {
		page.Issues = nil
		if database.IsMissingRelation(err) {
			page.Frame.Flash(web.FlashError, "Database tables might be missing or not fully migrated. Run 'greenhouse-server migrate'.")
		} else {
			slog.Error("failed to list issues", "error", err, "employee_id", employee.ID)
			page.Frame.Flash(web.FlashError, "An unexpected error occurred loading issues.")
		}
	}

	if err := h.renderer.Render(writer, http.StatusOK, "all_issues.html", page); err != nil {
		slog.Error("failed to render the issues page", "error", err)
	}
}

func (h *Handler) canResolve(employee database.Employee, greenhouseID int64) bool {
	if employee.IsAdmin {
		return true
	}

	return employee.GreenhouseID.Valid && employee.GreenhouseID.Int64 == greenhouseID
}

func (h *Handler) handlerIssueResolvePost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerIssueResolvePost")
	defer slog.Debug("<<handlerIssueResolvePost")

	issueID, err := strconv.ParseInt(request.PathValue("issueID"), 10, 64)
	if err != nil {
		http.NotFound(writer, request)
		return
	}

	issue, err := h.store.GetIssue(request.Context(), issueID)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(writer, request)
		return
	}
	if err != nil {
		slog.Error("failed to load the issue", "error", err, "issue_id", issueID)
		web.AddFlash(writer, web.FlashError, "An error occurred while resolving the issue.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	employee, _ := auth.CurrentEmployee(request.Context())
	if !h.canResolve(employee, issue.GreenhouseID) {
		web.AddFlash(writer, web.FlashError, "You do not have permission to resolve this issue.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	if issue.Status != statusOngoing {
		web.AddFlash(writer, web.FlashInfo, fmt.Sprintf("Issue #%d was already resolved.", issue.ID))
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	now := time.Now().UTC()
	resolved, logged, err := h.store.ResolveIssueWithReading(request.Context(), issue.ID, now, database.CreateReadingParams{
		GreenhouseID:   issue.GreenhouseID,
		Temperature:    h.normals.Temperature,
		Humidity:       h.normals.Humidity,
		Co2:            h.normals.Co2,
		LightIntensity: h.normals.LightIntensity,
		SoilPh:         h.normals.SoilPh,
		SoilMoisture:   h.normals.SoilMoisture,
		Timestamp:      sql.NullTime{Time: now, Valid: true},
		Source:         sourceResolution,
	})
	if err != nil {
		slog.Error("failed to resolve the issue", "error", err, "issue_id", issue.ID)
		web.AddFlash(writer, web.FlashError, "An error occurred while resolving the issue.")
		web.RedirectBack(writer, request, "/dashboard")
		return
	}

	greenhouseName := strconv.FormatInt(issue.GreenhouseID, 10)
	if greenhouse, err := h.store.GetGreenhouse(request.Context(), issue.GreenhouseID); err == nil {
		greenhouseName = greenhouse.Name
	}
	h.broadcaster.Broadcast(live.NewReadingEvent(greenhouseName, logged))

	web.AddFlash(writer, web.FlashSuccess, fmt.Sprintf("Issue #%d marked as resolved. Normal environmental state logged.", resolved.ID))
	web.RedirectBack(writer, request, "/dashboard")
}
