// Package server assembles the application: logging, settings, the database,
// outgoing mail, sessions, the live hub, and every HTTP service, then runs
// the listener with a supervised retention job and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/greentech-systems/greenhouse-server/config"
	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/notifier"
	"github.com/greentech-systems/greenhouse-server/internal/web"
	"github.com/greentech-systems/greenhouse-server/services/dashboard"
	"github.com/greentech-systems/greenhouse-server/services/employees"
	"github.com/greentech-systems/greenhouse-server/services/greenhouses"
	"github.com/greentech-systems/greenhouse-server/services/health"
	"github.com/greentech-systems/greenhouse-server/services/issues"
	"github.com/greentech-systems/greenhouse-server/services/live"
	"github.com/greentech-systems/greenhouse-server/services/readings"
	"github.com/greentech-systems/greenhouse-server/services/sessions"
	"github.com/greentech-systems/greenhouse-server/utils"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	// retentionSchedule prunes old readings daily at 03:00 server time.
	retentionSchedule = "0 3 * * *"

	shutdownTimeout = 10 * time.Second
)

type ServerConfig struct {
	mux *http.ServeMux

	Environment config.Environment
	Settings    config.Settings

	Logger      *slog.Logger
	LoggerLevel *slog.LevelVar
	LogFile     *os.File

	DBConnection *sql.DB
	Store        *database.Store
	Notifier     *notifier.Notifier
	Renderer     *web.Renderer
	Sessions     *auth.Sessions
	Hub          *live.Hub
}

// InitializeServer wires every service together. The caller is expected to
// Run the result; Run releases the resources opened here.
func InitializeServer(env config.Environment) (*ServerConfig, error) {
	slog.Debug(">>InitializeServer")
	defer slog.Debug("<<InitializeServer")

	sc := &ServerConfig{Environment: env}

	if err := sc.configureLogger(); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(env.ConfigFileLocation)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	sc.Settings = settings

	if err := sc.validate(); err != nil {
		return nil, err
	}

	if err := sc.openDatabase(); err != nil {
		return nil, err
	}

	sc.Notifier = notifier.New(notifier.Config{
		Enabled:     settings.Mail.Enabled,
		SenderName:  settings.Mail.SenderName,
		SenderEmail: env.MailUsername,
		Username:    env.MailUsername,
		Password:    env.MailPassword,
		Host:        settings.Mail.Host,
		Port:        settings.Mail.Port,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	sc.Renderer = renderer

	sc.Sessions = auth.NewSessions(env.SessionSecret, time.Duration(settings.SessionTTLHours)*time.Hour)
	sc.Hub = live.NewHub()

	sc.registerRoutes()

	return sc, nil
}

// configureLogger installs the process-wide slog default and keeps the level
// variable so the health service can change it at runtime.
func (sc *ServerConfig) configureLogger() error {
	currentLevel := new(slog.LevelVar)

	level, err := utils.ParseLogLevel(sc.Environment.LogLevel)
	if err != nil {
		slog.Error("failed to parse the log level, using the default",
			"error", err, "log_level", sc.Environment.LogLevel)
		level = config.DefaultLogLevel
	}
	currentLevel.Set(level)

	logFile := os.Stderr
	if sc.Environment.LogFileLocation != "" {
		logFile, err = os.OpenFile(sc.Environment.LogFileLocation, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: currentLevel}))
	slog.SetDefault(logger)

	sc.Logger = logger
	sc.LoggerLevel = currentLevel
	sc.LogFile = logFile

	return nil
}

// validate rejects configurations that cannot serve: sessions need a signing
// secret, and enabled mail needs credentials.
func (sc *ServerConfig) validate() error {
	if sc.Environment.SessionSecret == "" {
		return errors.New("SESSION_SECRET must be set")
	}

	if sc.Settings.Mail.Enabled && (sc.Environment.MailUsername == "" || sc.Environment.MailPassword == "") {
		return errors.New("mail is enabled but MAIL_USERNAME or MAIL_PASSWORD is not set")
	}

	return nil
}

func (sc *ServerConfig) openDatabase() error {
	db, err := sql.Open("postgres", sc.Environment.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sc.DBConnection = db
	sc.Store = database.NewStore(db)

	return nil
}

func (sc *ServerConfig) registerRoutes() {
	sc.mux = http.NewServeMux()

	healthHandler := health.NewHandler(sc.LoggerLevel)
	healthHandler.RegisterRoutes(sc.mux)

	sessionHandler := sessions.NewHandler(sc.Store, sc.Sessions, sc.Renderer)
	sessionHandler.RegisterRoutes(sc.mux)

	dashboardHandler := dashboard.NewHandler(sc.Store, sc.Renderer)
	dashboardHandler.RegisterRoutes(sc.mux)

	greenhouseHandler := greenhouses.NewHandler(sc.Store, sc.Renderer)
	greenhouseHandler.RegisterRoutes(sc.mux)

	readingHandler := readings.NewHandler(sc.Store, sc.Notifier, sc.Hub, sc.Renderer, sc.Settings.Thresholds)
	readingHandler.RegisterRoutes(sc.mux)

	issueHandler := issues.NewHandler(sc.Store, sc.Hub, sc.Renderer, sc.Settings.NormalValues)
	issueHandler.RegisterRoutes(sc.mux)

	employeeHandler := employees.NewHandler(sc.Store, sc.Notifier, sc.Renderer, sc.Settings.BaseURL)
	employeeHandler.RegisterRoutes(sc.mux)

	liveHandler := live.NewHandler(sc.Hub, sc.Settings.OriginPatterns)
	liveHandler.RegisterRoutes(sc.mux)
}

// Handler returns the full middleware chain: request logging outermost, then
// session resolution, then the route mux.
func (sc *ServerConfig) Handler() http.Handler {
	middleware := auth.NewMiddleware(sc.Sessions, sc.Store)

	return LoggingMiddleware(middleware.LoadEmployee(sc.mux))
}

// Run serves HTTP until the context is canceled, supervising the retention
// job alongside. Shutdown drains in-flight requests.
func (sc *ServerConfig) Run(ctx context.Context) error {
	slog.Debug(">>Run")
	defer slog.Debug("<<Run")

	defer sc.Close()

	group, ctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:    ":" + sc.Environment.ServerPort,
		Handler: sc.Handler(),
	}

	group.Go(func() error {
		slog.Info("starting server", "port", sc.Environment.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if sc.Settings.RetentionDays > 0 {
		group.Go(func() error {
			return sc.runRetention(ctx)
		})
	}

	return group.Wait()
}

// runRetention deletes readings older than the configured window on the
// retention schedule.
func (sc *ServerConfig) runRetention(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(retentionSchedule, func() {
		cutoff := time.Now().UTC().AddDate(0, 0, -sc.Settings.RetentionDays)
		deleted, err := sc.Store.DeleteReadingsBefore(context.Background(), sql.NullTime{Time: cutoff, Valid: true})
		if err != nil {
			slog.Error("failed to prune old readings", "error", err)
			return
		}

		slog.Info("pruned old readings", "deleted", deleted, "cutoff", cutoff)
	})
	if err != nil {
		return err
	}

	c.Start()
	defer c.Stop()

	<-ctx.Done()

	return nil
}

// Close releases the resources the server owns.
func (sc *ServerConfig) Close() {
	if sc.DBConnection != nil {
		sc.DBConnection.Close()
	}
	if sc.LogFile != nil && sc.LogFile != os.Stderr {
		sc.LogFile.Close()
	}
}
