// Package readings handles manual environmental data entry, the paginated
// historical listing with CSV export, and the latest-reading JSON endpoint.
// Recording a reading evaluates the configured thresholds and raises an
// issue, an alert email, and a live broadcast when a value is out of range.
package readings

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/checks"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/services/live"
	"github.com/greentech-systems/greenhouse-server/utils"
	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

const (
	readingsPerPage = 20
	sourceManual    = "manual"
)

func NewHandler(store ReadingStore, mailer Mailer, broadcaster Broadcaster, renderer *web.Renderer, thresholds checks.Thresholds) *Handler {
	h := Handler{
		store:       store,
		mailer:      mailer,
		broadcaster: broadcaster,
		renderer:    renderer,
		thresholds:  thresholds,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /input/{greenhouseID}", auth.RequireLogin(http.HandlerFunc(h.handlerInputGet)))
	mux.Handle("POST /input/{greenhouseID}", auth.RequireLogin(http.HandlerFunc(h.handlerInputPost)))
	mux.Handle("GET /historical_data", auth.RequireLogin(http.HandlerFunc(h.handlerHistoricalDataGet)))
	mux.Handle("GET /historical_data/export", auth.RequireLogin(http.HandlerFunc(h.handlerExportGet)))
	mux.Handle("GET /api/greenhouse/{greenhouseID}/latest_data", auth.RequireLoginAPI(http.HandlerFunc(h.handlerLatestDataGet)))
}

// loadGreenhouse resolves the greenhouse named in the path. Unknown ids and
// malformed ids both answer 404.
func (h *Handler) loadGreenhouse(writer http.ResponseWriter, request *http.Request) (database.Greenhouse, bool) {
	greenhouseID, err := strconv.ParseInt(request.PathValue("greenhouseID"), 10, 64)
	if err != nil {
		http.NotFound(writer, request)
		return database.Greenhouse{}, false
	}

	greenhouse, err := h.store.GetGreenhouse(request.Context(), greenhouseID)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(writer, request)
		return database.Greenhouse{}, false
	}
	if err != nil {
		slog.Error("failed to load the greenhouse", "error", err, "greenhouse_id", greenhouseID)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return database.Greenhouse{}, false
	}

	return greenhouse, true
}

func (h *Handler) handlerInputGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerInputGet")
	defer slog.Debug("<<handlerInputGet")

	greenhouse, ok := h.loadGreenhouse(writer, request)
	if !ok {
		return
	}

	h.renderInputForm(writer, request, greenhouse, "", "")
}

func (h *Handler) handlerInputPost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerInputPost")
	defer slog.Debug("<<handlerInputPost")

	greenhouse, ok := h.loadGreenhouse(writer, request)
	if !ok {
		return
	}

	reading, err := parseReadingForm(request)
	if err != nil {
		h.renderInputForm(writer, request, greenhouse, web.FlashError, "Invalid input. Please ensure all fields are numbers.")
		return
	}

	description := ""
	if violations := h.thresholds.Violations(reading); len(violations) > 0 {
		description = checks.AlertDescription(greenhouse.Name, greenhouse.Location, violations)
	}

	stored, issue, err := h.store.RecordReading(request.Context(), database.CreateReadingParams{
		GreenhouseID:   greenhouse.ID,
		Temperature:    reading.Temperature,
		Humidity:       reading.Humidity,
		Co2:            reading.Co2,
		LightIntensity: reading.LightIntensity,
		SoilPh:         reading.SoilPh,
		SoilMoisture:   reading.SoilMoisture,
		Timestamp:      sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Source:         sourceManual,
	}, description)
	if err != nil {
		slog.Error("failed to record the reading", "error", err, "greenhouse_id", greenhouse.ID)
		h.renderInputForm(writer, request, greenhouse, web.FlashError, "An error occurred while saving data or logging the issue.")
		return
	}

	web.AddFlash(writer, web.FlashSuccess, "Data recorded successfully!")

	h.broadcaster.Broadcast(live.NewReadingEvent(greenhouse.Name, stored))
	if issue != nil {
		h.broadcaster.Broadcast(live.NewAlertEvent(greenhouse.Name, *issue))
		h.notifyAssignedEmployees(writer, request, greenhouse, *issue)
	}

	http.Redirect(writer, request, fmt.Sprintf("/input/%d", greenhouse.ID), http.StatusSeeOther)
}

// parseReadingForm converts the six posted measurements. One bad field fails
// the whole form.
func parseReadingForm(request *http.Request) (checks.Reading, error) {
	var reading checks.Reading

	fields := []struct {
		name   string
		target *float64
	}{
		{"temperature", &reading.Temperature},
		{"humidity", &reading.Humidity},
		{"co2", &reading.Co2},
		{"light_intensity", &reading.LightIntensity},
		{"soil_ph", &reading.SoilPh},
		{"soil_moisture", &reading.SoilMoisture},
	}
	for _, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(request.FormValue(field.name)), 64)
		if err != nil {
			return checks.Reading{}, fmt.Errorf("parse %s: %w", field.name, err)
		}
		*field.target = value
	}

	return reading, nil
}

// notifyAssignedEmployees emails the alert to the available employees of the
// greenhouse. A failed send is flashed so the operator knows to deliver the
// alert by hand; the issue itself is already committed at this point.
func (h *Handler) notifyAssignedEmployees(writer http.ResponseWriter, request *http.Request, greenhouse database.Greenhouse, issue database.Issue) {
	assigned, err := h.store.ListEmployeesByGreenhouse(request.Context(), sql.NullInt64{Int64: greenhouse.ID, Valid: true})
	if err != nil {
		slog.Error("failed to list the assigned employees", "error", err, "greenhouse_id", greenhouse.ID)
		return
	}

	available := lo.Filter(assigned, func(employee database.Employee, _ int) bool {
		return employee.Available && employee.Email != ""
	})
	recipients := lo.Map(available, func(employee database.Employee, _ int) string {
		return employee.Email
	})

	if len(recipients) == 0 {
		slog.Warn("issue detected but no available employees with emails are assigned",
			"greenhouse", greenhouse.Name)
		return
	}

	if !h.mailer.Enabled() {
		slog.Info("mail notifications are disabled, skipping the alert email",
			"greenhouse", greenhouse.Name, "recipients", len(recipients))
		return
	}

	subject := fmt.Sprintf("Alert: GreenHouse Notification For '%s'", greenhouse.Name)
	body := issue.Description + "\n\nPlease investigate and resolve the issue."
	if err := h.mailer.Send(request.Context(), subject, body, recipients...); err != nil {
		slog.Error("failed to send the alert email", "error", err, "greenhouse", greenhouse.Name)
		web.AddFlash(writer, web.FlashDanger,
			fmt.Sprintf("Alert logged, but failed to send email notification to %s. Please check system logs.",
				strings.Join(recipients, ", ")))
	}
}

func (h *Handler) renderInputForm(writer http.ResponseWriter, request *http.Request, greenhouse database.Greenhouse, category, message string) {
	page := inputFormPage{
		Frame:          web.NewFrame(writer, request, "Manual Data Entry"),
		GreenhouseID:   greenhouse.ID,
		GreenhouseName: greenhouse.Name,
	}
	page.Frame.Viewer = auth.Viewer(request.Context())
	if message != "" {
		page.Frame.Flash(category, message)
	}

	if err := h.renderer.Render(writer, http.StatusOK, "input_form.html", page); err != nil {
		slog.Error("failed to render the input form", "error", err)
	}
}

func (h *Handler) handlerHistoricalDataGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerHistoricalDataGet")
	defer slog.Debug("<<handlerHistoricalDataGet")

	page := historicalDataPage{
		Frame: web.NewFrame(writer, request, "Historical Data"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	pageNum, err := strconv.Atoi(request.URL.Query().Get("page"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	if err := h.loadHistory(request.Context(), &page, pageNum); err != nil {
		page.Rows = nil
		if database.IsMissingRelation(err) {
			page.Frame.Flash(web.FlashError, "Database tables/columns might be missing or not fully migrated. Run 'greenhouse-server migrate'.")
		} else {
			slog.Error("failed to load historical data", "error", err)
			page.Frame.Flash(web.FlashError, "An unexpected error occurred loading historical data.")
		}
	}

	if err := h.renderer.Render(writer, http.StatusOK, "historical_data.html", page); err != nil {
		slog.Error("failed to render the historical data page", "error", err)
	}
}

// loadHistory fills one listing page. Pages past the end come back empty
// rather than failing.
func (h *Handler) loadHistory(ctx context.Context, page *historicalDataPage, pageNum int) error {
	total, err := h.store.CountManualReadings(ctx)
	if err != nil {
		return fmt.Errorf("count readings: %w", err)
	}

	rows, err := h.store.ListManualReadings(ctx, database.ListManualReadingsParams{
		Limit:  readingsPerPage,
		Offset: int32((pageNum - 1) * readingsPerPage),
	})
	if err != nil {
		return fmt.Errorf("list readings: %w", err)
	}

	page.Rows = lo.Map(rows, func(row database.ListManualReadingsRow, _ int) web.ReadingView {
		return databaseManualReadingToView(row)
	})
	page.Pagination = web.Pagination{Page: pageNum, PerPage: readingsPerPage, Total: total}

	return nil
}

func (h *Handler) handlerExportGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerExportGet")
	defer slog.Debug("<<handlerExportGet")

	var (
		views    []web.ReadingView
		filename string
	)

	if raw := request.URL.Query().Get("greenhouse_id"); raw != "" {
		greenhouseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.NotFound(writer, request)
			return
		}

		greenhouse, err := h.store.GetGreenhouse(request.Context(), greenhouseID)
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(writer, request)
			return
		}
		if err != nil {
			slog.Error("failed to load the greenhouse", "error", err, "greenhouse_id", greenhouseID)
			http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		rows, err := h.store.ListManualReadingsByGreenhouse(request.Context(), greenhouseID)
		if err != nil {
			slog.Error("failed to list the readings", "error", err, "greenhouse_id", greenhouseID)
			http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		views = lo.Map(rows, func(row database.ListManualReadingsByGreenhouseRow, _ int) web.ReadingView {
			return databaseGreenhouseReadingToView(row)
		})
		filename = slug.Make(greenhouse.Name) + "-readings.csv"
	} else {
		rows, err := h.store.ListAllManualReadings(request.Context())
		if err != nil {
			slog.Error("failed to list the readings", "error", err)
			http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		views = lo.Map(rows, func(row database.ListAllManualReadingsRow, _ int) web.ReadingView {
			return databaseAllManualReadingToView(row)
		})
		filename = "environmental-readings.csv"
	}

	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	csvWriter := csv.NewWriter(writer)
	header := []string{"Greenhouse", "Temp (°C)", "Humidity (%)", "CO2 (ppm)", "Light (lux)", "Soil pH", "Soil Moisture (%)", "Timestamp"}
	if err := csvWriter.Write(header); err != nil {
		slog.Error("failed to write the csv header", "error", err)
		return
	}

	for _, view := range views {
		record := []string{
			view.GreenhouseLabel(),
			view.TemperatureDisplay(),
			view.HumidityDisplay(),
			view.Co2Display(),
			view.LightIntensityDisplay(),
			view.SoilPhDisplay(),
			view.SoilMoistureDisplay(),
			view.TimestampDisplay(),
		}
		if err := csvWriter.Write(record); err != nil {
			slog.Error("failed to write a csv row", "error", err)
			return
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		slog.Error("failed to flush the csv", "error", err)
	}
}

func (h *Handler) handlerLatestDataGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerLatestDataGet")
	defer slog.Debug("<<handlerLatestDataGet")

	greenhouseID, err := strconv.ParseInt(request.PathValue("greenhouseID"), 10, 64)
	if err != nil {
		utils.RespondWithError(writer, http.StatusNotFound, "Greenhouse not found", err)
		return
	}

	greenhouse, err := h.store.GetGreenhouse(request.Context(), greenhouseID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.RespondWithError(writer, http.StatusNotFound, "Greenhouse not found", err)
		return
	}
	if err != nil {
		utils.RespondWithError(writer, http.StatusInternalServerError, "failed to load the greenhouse", err)
		return
	}

	response := latestDataResponse{
		Success:        true,
		GreenhouseName: greenhouse.Name,
		Location:       greenhouse.Location,
	}

	latest, err := h.store.GetLatestReading(request.Context(), greenhouseID)
	switch {
	case err == nil:
		response.Data = &latestDataPayload{
			Temperature:    latest.Temperature,
			Humidity:       latest.Humidity,
			Co2:            latest.Co2,
			LightIntensity: latest.LightIntensity,
			SoilPh:         latest.SoilPh,
			SoilMoisture:   latest.SoilMoisture,
			Timestamp:      formatAPITimestamp(latest.Timestamp),
		}
	case errors.Is(err, sql.ErrNoRows):
		// A greenhouse with no readings reports null data.
	default:
		utils.RespondWithError(writer, http.StatusInternalServerError, "failed to load the latest reading", err)
		return
	}

	utils.RespondWithJSON(writer, http.StatusOK, response)
}

func formatAPITimestamp(timestamp sql.NullTime) string {
	if !timestamp.Valid {
		return "N/A"
	}

	return timestamp.Time.UTC().Format("2006-01-02 15:04:05") + " UTC"
}
