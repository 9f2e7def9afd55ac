// Package dashboard assembles the landing page: greenhouse status cards,
// company-wide counts, and the viewer's own ongoing issue if they have one.
package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/samber/lo"
)

// The dashboard shows at most this many greenhouse cards.
const displayedGreenhouseLimit = 4

func NewHandler(store DashboardStore, renderer *web.Renderer) *Handler {
	h := Handler{
		store:    store,
		renderer: renderer,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /dashboard", auth.RequireLogin(http.HandlerFunc(h.handlerDashboardGet)))
}

func (h *Handler) handlerDashboardGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerDashboardGet")
	defer slog.Debug("<<handlerDashboardGet")

	employee, _ := auth.CurrentEmployee(request.Context())

	page := dashboardPage{
		Frame: web.NewFrame(writer, request, "Dashboard"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	if err := h.loadContent(request.Context(), employee, &page); err != nil {
		slog.Error("failed to load the dashboard", "error", err, "employee_id", employee.ID)
		page = dashboardPage{Frame: page.Frame}
		page.Frame.Flash(web.FlashError, "An unexpected error occurred loading the dashboard.")
	}

	if err := h.renderer.Render(writer, http.StatusOK, "dashboard.html", page); err != nil {
		slog.Error("failed to render the dashboard", "error", err)
	}
}

func (h *Handler) loadContent(ctx context.Context, employee database.Employee, page *dashboardPage) error {
	greenhouses, err := h.store.ListGreenhouses(ctx)
	if err != nil {
		return fmt.Errorf("list greenhouses: %w", err)
	}

	ongoingIDs, err := h.store.ListGreenhouseIDsWithOngoingIssues(ctx)
	if err != nil {
		return fmt.Errorf("list greenhouses with ongoing issues: %w", err)
	}

	cards := make([]greenhouseCard, 0, len(greenhouses))
	for _, greenhouse := range greenhouses {
		var latest *web.ReadingView

		reading, err := h.store.GetLatestReading(ctx, greenhouse.ID)
		switch {
		case err == nil:
			view := databaseReadingToView(reading)
			latest = &view
		case errors.Is(err, sql.ErrNoRows):
			// A greenhouse without readings still gets a card.
		default:
			return fmt.Errorf("latest reading for greenhouse %d: %w", greenhouse.ID, err)
		}

		cards = append(cards, databaseGreenhouseToCard(greenhouse, lo.Contains(ongoingIDs, greenhouse.ID), latest))
	}

	// Greenhouses with ongoing issues surface first, keeping id order within
	// each group.
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].HasOngoingIssue && !cards[j].HasOngoingIssue
	})

	page.OngoingIssueCount = lo.CountBy(cards, func(card greenhouseCard) bool {
		return card.HasOngoingIssue
	})
	page.Greenhouses = lo.Slice(cards, 0, displayedGreenhouseLimit)

	if page.EmployeeCount, err = h.store.CountEmployees(ctx); err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if page.ResolvedIssueCount, err = h.store.CountResolvedIssues(ctx); err != nil {
		return fmt.Errorf("count resolved issues: %w", err)
	}

	if !employee.GreenhouseID.Valid {
		return nil
	}

	issue, err := h.store.GetLatestOngoingIssueForGreenhouse(ctx, employee.GreenhouseID.Int64)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ongoing issue for greenhouse %d: %w", employee.GreenhouseID.Int64, err)
	}

	name := strconv.FormatInt(issue.GreenhouseID, 10)
	if greenhouse, found := lo.Find(greenhouses, func(g database.Greenhouse) bool {
		return g.ID == issue.GreenhouseID
	}); found {
		name = greenhouse.Name
	}

	page.AssignedIssue = &assignedIssue{
		ID:             issue.ID,
		GreenhouseName: name,
		Description:    issue.Description,
	}

	return nil
}
