package web

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestReadingViewFormatting(t *testing.T) {
	view := ReadingView{
		GreenhouseID:   3,
		GreenhouseName: sql.NullString{String: "North Wing", Valid: true},
		Temperature:    21.456,
		Humidity:       55.25,
		Co2:            850.05,
		LightIntensity: 5500.8,
		SoilPh:         6.5,
		SoilMoisture:   45.0,
		Timestamp:      sql.NullTime{Time: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC), Valid: true},
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"greenhouse label", view.GreenhouseLabel(), "North Wing"},
		{"temperature two decimals", view.TemperatureDisplay(), "21.46"},
		{"humidity one decimal", view.HumidityDisplay(), "55.2"},
		{"co2 one decimal", view.Co2Display(), "850.1"},
		{"light intensity whole number", view.LightIntensityDisplay(), "5501"},
		{"soil ph two decimals", view.SoilPhDisplay(), "6.50"},
		{"soil moisture one decimal", view.SoilMoistureDisplay(), "45.0"},
		{"timestamp", view.TimestampDisplay(), "2026-03-14 09:26:53"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, tc.got)
			}
		})
	}

	t.Run("missing greenhouse falls back to the id", func(t *testing.T) {
		orphan := ReadingView{GreenhouseID: 42}
		if got := orphan.GreenhouseLabel(); got != "42" {
			t.Errorf("expected the raw id, got %q", got)
		}
	})

	t.Run("missing timestamp renders N/A", func(t *testing.T) {
		view := ReadingView{}
		if got := view.TimestampDisplay(); got != "N/A" {
			t.Errorf("expected N/A, got %q", got)
		}
	})
}

func TestPagination(t *testing.T) {
	t.Run("page counts", func(t *testing.T) {
		tests := []struct {
			name     string
			total    int64
			expected int
		}{
			{"empty", 0, 0},
			{"single partial page", 7, 1},
			{"exact boundary", 40, 2},
			{"one over the boundary", 41, 3},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				p := Pagination{Page: 1, PerPage: 20, Total: tc.total}
				if got := p.Pages(); got != tc.expected {
					t.Errorf("expected %d pages, got %d", tc.expected, got)
				}
			})
		}
	})

	t.Run("navigation", func(t *testing.T) {
		p := Pagination{Page: 2, PerPage: 20, Total: 45}
		if !p.HasPrev() || p.PrevNum() != 1 {
			t.Errorf("expected a previous page 1, got %v %d", p.HasPrev(), p.PrevNum())
		}
		if !p.HasNext() || p.NextNum() != 3 {
			t.Errorf("expected a next page 3, got %v %d", p.HasNext(), p.NextNum())
		}

		last := Pagination{Page: 3, PerPage: 20, Total: 45}
		if last.HasNext() {
			t.Error("expected no next page past the end")
		}
	})
}

type historicalPage struct {
	Frame      Frame
	Rows       []ReadingView
	Pagination Pagination
}

func TestRenderHistoricalData(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected the templates to parse, got %v", err)
	}

	t.Run("empty input renders exactly one fallback row", func(t *testing.T) {
		rr := httptest.NewRecorder()
		err := renderer.Render(rr, http.StatusOK, "historical_data.html", historicalPage{
			Frame: Frame{Title: "Historical Data"},
		})
		if err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}

		body := rr.Body.String()
		fallback := `<td colspan="8" class="no-data">No manually entered environmental data found in the system.</td>`
		if strings.Count(body, fallback) != 1 {
			t.Errorf("expected exactly one fallback row, body:\n%s", body)
		}
		if strings.Contains(body, "pagination") {
			t.Error("expected no pagination block for an empty listing")
		}
	})

	t.Run("rows render in input order with all eight columns", func(t *testing.T) {
		newer := time.Date(2026, 1, 2, 12, 30, 5, 0, time.UTC)
		rows := []ReadingView{
			{
				GreenhouseID:   1,
				GreenhouseName: sql.NullString{String: "North Wing", Valid: true},
				Temperature:    22.5, Humidity: 50, Co2: 700, LightIntensity: 5000,
				SoilPh: 6.5, SoilMoisture: 45,
				Timestamp: sql.NullTime{Time: newer, Valid: true},
			},
			{
				GreenhouseID: 9,
				Temperature:  30.123, Humidity: 61.55, Co2: 1200.04, LightIntensity: 900.6,
				SoilPh: 5.2, SoilMoisture: 20,
			},
		}

		rr := httptest.NewRecorder()
		err := renderer.Render(rr, http.StatusOK, "historical_data.html", historicalPage{
			Frame:      Frame{Title: "Historical Data"},
			Rows:       rows,
			Pagination: Pagination{Page: 1, PerPage: 20, Total: 2},
		})
		if err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}

		body := rr.Body.String()
		for _, header := range []string{
			"Greenhouse", "Temp (°C)", "Humidity (%)", "CO2 (ppm)",
			"Light (lux)", "Soil pH", "Soil Moisture (%)", "Timestamp",
		} {
			if !strings.Contains(body, "<th>"+header+"</th>") {
				t.Errorf("expected header %q in the table", header)
			}
		}

		for _, cell := range []string{
			"<td>North Wing</td>", "<td>22.50</td>", "<td>50.0</td>", "<td>700.0</td>",
			"<td>5000</td>", "<td>6.50</td>", "<td>45.0</td>", "<td>2026-01-02 12:30:05</td>",
			"<td>9</td>", "<td>30.12</td>", "<td>61.5</td>", "<td>1200.0</td>",
			"<td>901</td>", "<td>5.20</td>", "<td>20.0</td>", "<td>N/A</td>",
		} {
			if !strings.Contains(body, cell) {
				t.Errorf("expected cell %s in the table", cell)
			}
		}

		if strings.Index(body, "North Wing") > strings.Index(body, "<td>9</td>") {
			t.Error("expected rows to keep their input order")
		}
		if strings.Contains(body, "no-data") {
			t.Error("expected no fallback row when rows are present")
		}
	})

	t.Run("rendering is idempotent", func(t *testing.T) {
		page := historicalPage{
			Frame: Frame{Title: "Historical Data"},
			Rows: []ReadingView{{
				GreenhouseID: 7, Temperature: 21, Humidity: 40, Co2: 400,
				LightIntensity: 1000, SoilPh: 6, SoilMoisture: 30,
			}},
			Pagination: Pagination{Page: 1, PerPage: 20, Total: 1},
		}

		first := httptest.NewRecorder()
		second := httptest.NewRecorder()
		if err := renderer.Render(first, http.StatusOK, "historical_data.html", page); err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}
		if err := renderer.Render(second, http.StatusOK, "historical_data.html", page); err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}

		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Error("expected byte-identical output for identical input")
		}
	})

	t.Run("pagination links", func(t *testing.T) {
		rr := httptest.NewRecorder()
		err := renderer.Render(rr, http.StatusOK, "historical_data.html", historicalPage{
			Frame:      Frame{Title: "Historical Data"},
			Rows:       []ReadingView{{GreenhouseID: 1}},
			Pagination: Pagination{Page: 2, PerPage: 20, Total: 45},
		})
		if err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}

		body := rr.Body.String()
		if !strings.Contains(body, `href="/historical_data?page=1"`) {
			t.Error("expected a previous link to page 1")
		}
		if !strings.Contains(body, `href="/historical_data?page=3"`) {
			t.Error("expected a next link to page 3")
		}
		if !strings.Contains(body, "Page 2 of 3") {
			t.Error("expected the page counter")
		}
	})
}

func TestLayoutNavigation(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected the templates to parse, got %v", err)
	}

	t.Run("anonymous pages hide the navigation", func(t *testing.T) {
		rr := httptest.NewRecorder()
		data := struct {
			Frame Frame
			Next  string
		}{Frame: Frame{Title: "Login"}}
		if err := renderer.Render(rr, http.StatusOK, "login.html", data); err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}
		if strings.Contains(rr.Body.String(), "/logout") {
			t.Error("expected no navigation for anonymous visitors")
		}
	})

	t.Run("signed-in pages show the viewer", func(t *testing.T) {
		rr := httptest.NewRecorder()
		data := struct {
			Frame Frame
			Next  string
		}{Frame: Frame{
			Title:  "Login",
			Viewer: &Viewer{ID: 1, Name: "Dana Reyes", IsAdmin: true},
		}}
		if err := renderer.Render(rr, http.StatusOK, "login.html", data); err != nil {
			t.Fatalf("expected no render error, got %v", err)
		}

		body := rr.Body.String()
		if !strings.Contains(body, "Dana Reyes") || !strings.Contains(body, "(admin)") {
			t.Error("expected the viewer name and admin marker in the navigation")
		}
	})
}

func TestFlashLifecycle(t *testing.T) {
	t.Run("messages ride one redirect", func(t *testing.T) {
		rr := httptest.NewRecorder()
		AddFlash(rr, FlashSuccess, "Data recorded successfully!")
		AddFlash(rr, FlashDanger, "Alert logged, but failed to send email notification to a@b.c. Please check system logs.")

		// carry the cookie into the follow-up request, as a browser would
		next := httptest.NewRequest(http.MethodGet, "/input/1", nil)
		for _, cookie := range rr.Result().Cookies() {
			if cookie.Name == flashCookieName {
				next.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
			}
		}

		popRecorder := httptest.NewRecorder()
		flashes := PopFlashes(popRecorder, next)
		if len(flashes) != 2 {
			t.Fatalf("expected both flashes to survive the redirect, got %d", len(flashes))
		}
		if flashes[0].Category != FlashSuccess || flashes[0].Message != "Data recorded successfully!" {
			t.Errorf("unexpected first flash %+v", flashes[0])
		}
		if flashes[1].Category != FlashDanger {
			t.Errorf("unexpected second flash %+v", flashes[1])
		}

		cleared := false
		for _, cookie := range popRecorder.Result().Cookies() {
			if cookie.Name == flashCookieName && cookie.Value == "" && cookie.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("expected the flash cookie to be cleared after popping")
		}
	})

	t.Run("no cookie means no flashes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		if flashes := PopFlashes(httptest.NewRecorder(), req); flashes != nil {
			t.Errorf("expected nil, got %+v", flashes)
		}
	})

	t.Run("inline frame flashes", func(t *testing.T) {
		frame := Frame{Title: "Input"}
		frame.Flash(FlashError, "Invalid input. Please ensure all fields are numbers.")
		if len(frame.Flashes) != 1 || frame.Flashes[0].Category != FlashError {
			t.Errorf("unexpected frame flashes %+v", frame.Flashes)
		}
	})
}
