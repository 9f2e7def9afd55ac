package health

import "log/slog"

type HealthResponse struct {
	Status   string `json:"status"`
	LogLevel string `json:"log_level"`
}

type UpdateLogLevelRequest struct {
	LogLevel string `json:"log_level"`
}

type Handler struct {
	loggerLevel *slog.LevelVar
}
