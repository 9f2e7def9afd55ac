// Package health reports server liveness and exposes the live log level so
// it can be raised or lowered without a restart.
package health

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/greentech-systems/greenhouse-server/utils"
)

func NewHandler(loggerLevel *slog.LevelVar) *Handler {
	h := Handler{
		loggerLevel: loggerLevel,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", h.handlerHealthGet)
	mux.HandleFunc("PUT /v1/health/log_level", h.handlerLogLevelPut)
}

func (h *Handler) handlerHealthGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerHealthGet")
	defer slog.Debug("<<handlerHealthGet")

	response := HealthResponse{
		Status:   "ok",
		LogLevel: h.loggerLevel.Level().String(),
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *Handler) handlerLogLevelPut(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerLogLevelPut")
	defer slog.Debug("<<handlerLogLevelPut")

	params := UpdateLogLevelRequest{}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&params); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "could not parse body", err)
		return
	}

	level, err := utils.ParseLogLevel(params.LogLevel)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown log level", err)
		return
	}

	h.loggerLevel.Set(level)
	slog.Info("log level changed", "log_level", level.String())

	utils.RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		LogLevel: level.String(),
	})
}
