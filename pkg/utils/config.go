package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Events    EventsConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

// Location resolves the configured timezone, falling back to the host's.
func (c AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// URL renders the connection settings as a URL with the given scheme
// ("postgres" for pgx, "pgx5" for migrate).
func (c DatabaseConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

type SessionConfig struct {
	ExpiryHours int
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

func (c EventsConfig) Enabled() bool { return c.AMQPURL != "" }

// SchedulerConfig holds cron expressions for background jobs. An empty
// expression disables the job.
type SchedulerConfig struct {
	CompletionSweepCron string
	SessionCleanupCron  string
}

func (c SchedulerConfig) Enabled() bool {
	return c.CompletionSweepCron != "" || c.SessionCleanupCron != ""
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "court-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "Local")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "court-booking")
	v.SetDefault("COMPLETION_SWEEP_CRON", "")
	v.SetDefault("SESSION_CLEANUP_CRON", "")

	// .env is optional; the process environment always wins.
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Events: EventsConfig{
			AMQPURL:  v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		Scheduler: SchedulerConfig{
			CompletionSweepCron: v.GetString("COMPLETION_SWEEP_CRON"),
			SessionCleanupCron:  v.GetString("SESSION_CLEANUP_CRON"),
		},
	}

	if config.Database.Name == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	if config.Database.MaxConns < 1 {
		config.Database.MaxConns = 1
	}

	return config, nil
}
