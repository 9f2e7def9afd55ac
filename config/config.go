// Package config loads the server's process environment and its JSON
// settings file. Secrets stay in the environment; tunables live in the file.
package config

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/greentech-systems/greenhouse-server/internal/checks"
)

const DefaultLogLevel = slog.LevelInfo

// Environment holds the variables read from the process environment.
type Environment struct {
	DatabaseURL        string `env:"DATABASE_URL,required"`
	ServerPort         string `env:"PORT" envDefault:"8080"`
	SessionSecret      string `env:"SESSION_SECRET"`
	MailUsername       string `env:"MAIL_USERNAME"`
	MailPassword       string `env:"MAIL_PASSWORD"`
	ConfigFileLocation string `env:"CONFIG_FILE_LOCATION" envDefault:"./config/config.json"`
	LogFileLocation    string `env:"LOG_FILE_LOCATION"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"INFO"`
	MigrationsFolder   string `env:"MIGRATIONS_FOLDER" envDefault:"./sql/migrations"`
}

// LoadEnvironment reads a .env file when one exists and parses the process
// environment.
func LoadEnvironment() (Environment, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	return env.ParseAs[Environment]()
}

// MailSettings describes the outgoing SMTP relay. The credentials come from
// the environment, not from here.
type MailSettings struct {
	Enabled    bool   `json:"enabled"`
	SenderName string `json:"sender_name"`
	Host       string `json:"host"`
	Port       string `json:"port"`
}

// Settings mirrors the JSON settings file.
type Settings struct {
	OriginPatterns  []string          `json:"origin_patterns"`
	SessionTTLHours int               `json:"session_ttl_hours"`
	RetentionDays   int               `json:"retention_days"`
	BaseURL         string            `json:"base_url"`
	Thresholds      checks.Thresholds `json:"thresholds"`
	NormalValues    checks.Normals    `json:"normal_values"`
	Mail            MailSettings      `json:"mail"`
}

// DefaultSettings returns the configuration used when no settings file is
// present. Retention is off so the full reading history is kept.
func DefaultSettings() Settings {
	return Settings{
		SessionTTLHours: 24,
		RetentionDays:   0,
		BaseURL:         "http://127.0.0.1:8080/",
		Thresholds:      checks.DefaultThresholds(),
		NormalValues:    checks.DefaultNormals(),
		Mail: MailSettings{
			Enabled:    false,
			SenderName: "GreenTech Systems",
			Host:       "smtp.gmail.com",
			Port:       "587",
		},
	}
}

// LoadSettings reads the settings file. A missing file is not an error, the
// defaults apply; a file that exists overrides them field by field.
func LoadSettings(filename string) (Settings, error) {
	settings := DefaultSettings()

	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("settings file not found, using defaults", "file", filename)
			return settings, nil
		}

		return settings, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return settings, err
	}

	err = json.Unmarshal(bytes, &settings)
	if err != nil {
		return settings, err
	}

	return settings, nil
}
