// Package greenhouses lists the registered greenhouses and lets a
// logged in employee add new ones.
package greenhouses

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/samber/lo"
)

const statusNormal = "normal"

func NewHandler(store GreenhouseStore, renderer *web.Renderer) *Handler {
	h := Handler{
		store:    store,
		renderer: renderer,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /greenhouses", auth.RequireLogin(http.HandlerFunc(h.handlerGreenhousesGet)))
	mux.Handle("GET /create_greenhouse", auth.RequireLogin(http.HandlerFunc(h.handlerCreateGreenhouseGet)))
	mux.Handle("POST /create_greenhouse", auth.RequireLogin(http.HandlerFunc(h.handlerCreateGreenhousePost)))
}

func (h *Handler) handlerGreenhousesGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerGreenhousesGet")
	defer slog.Debug("<<handlerGreenhousesGet")

	page := greenhousesPage{
		Frame: web.NewFrame(writer, request, "Greenhouses"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	greenhouses, err := h.store.ListGreenhousesByName(request.Context())
	if err != nil {
		if database.IsMissingRelation(err) {
			page.Frame.Flash(web.FlashError, "Database tables might be missing or not fully migrated. Run 'greenhouse-server migrate'.")
		} else {
			slog.Error("failed to list greenhouses", "error", err)
			page.Frame.Flash(web.FlashError, "An unexpected error occurred loading greenhouses.")
		}

		h.renderGreenhouses(writer, page)
		return
	}

	page.Greenhouses = lo.Map(greenhouses, func(greenhouse database.Greenhouse, _ int) GreenhouseRow {
		return databaseGreenhouseToRow(greenhouse)
	})

	h.renderGreenhouses(writer, page)
}

func (h *Handler) renderGreenhouses(writer http.ResponseWriter, page greenhousesPage) {
	if err := h.renderer.Render(writer, http.StatusOK, "view_greenhouses.html", page); err != nil {
		slog.Error("failed to render the greenhouses page", "error", err)
	}
}

func (h *Handler) handlerCreateGreenhouseGet(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerCreateGreenhouseGet")
	defer slog.Debug("<<handlerCreateGreenhouseGet")

	page := createGreenhousePage{
		Frame: web.NewFrame(writer, request, "Create Greenhouse"),
	}
	page.Frame.Viewer = auth.Viewer(request.Context())

	h.renderCreateGreenhouse(writer, page)
}

func (h *Handler) handlerCreateGreenhousePost(writer http.ResponseWriter, request *http.Request) {
	slog.Debug(">>handlerCreateGreenhousePost")
	defer slog.Debug("<<handlerCreateGreenhousePost")

	name := strings.TrimSpace(request.FormValue("name"))
	location := strings.TrimSpace(request.FormValue("location"))

	if name == "" || location == "" {
		page := createGreenhousePage{
			Frame: web.NewFrame(writer, request, "Create Greenhouse"),
		}
		page.Frame.Viewer = auth.Viewer(request.Context())
		page.Frame.Flash(web.FlashWarning, "Name and location are required.")

		h.renderCreateGreenhouse(writer, page)
		return
	}

	_, err := h.store.CreateGreenhouse(request.Context(), database.CreateGreenhouseParams{
		Name:     name,
		Location: location,
		Status:   statusNormal,
	})
	if err != nil {
		slog.Error("failed to create greenhouse", "error", err, "name", name)

		page := createGreenhousePage{
			Frame: web.NewFrame(writer, request, "Create Greenhouse"),
		}
		page.Frame.Viewer = auth.Viewer(request.Context())
		page.Frame.Flash(web.FlashError, "An error occurred while creating the greenhouse.")

		h.renderCreateGreenhouse(writer, page)
		return
	}

	web.AddFlash(writer, web.FlashSuccess, "Greenhouse created successfully!")
	http.Redirect(writer, request, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) renderCreateGreenhouse(writer http.ResponseWriter, page createGreenhousePage) {
	if err := h.renderer.Render(writer, http.StatusOK, "create_greenhouse.html", page); err != nil {
		slog.Error("failed to render the create greenhouse page", "error", err)
	}
}
