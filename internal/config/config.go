package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Audit
		Tasks
		Session
		CSRF
		ReadOnly
		RateLimit
	}

	HTTP struct {
		Port           int32
		Host           string
		RequestTimeout time.Duration // Applied to every request context
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver     string // "sqlite" (default) or "postgres"
		Path       string // SQLite file path
		DSN        string // Postgres connection string
		LogQueries bool
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	CSRF struct {
		Enabled bool
		Secret  string // 32 bytes, hex or raw; generated when empty
	}
	ReadOnly struct {
		Enabled bool // Block every write request
	}
	RateLimit struct {
		Enabled           bool
		RequestsPerMinute int // Form submissions per client IP
		Burst             int
	}
)

func NewConfig() *Config {
	// A missing .env file is fine, the environment still applies.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_queries", false)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Session and form protection defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("read_only", false)
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_requests_per_minute", 60)
	v.SetDefault("rate_limit_burst", 10)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:     v.GetString("DATABASE_DRIVER"),
			Path:       v.GetString("DATABASE_PATH"),
			DSN:        v.GetString("DATABASE_DSN"),
			LogQueries: v.GetBool("DATABASE_LOG_QUERIES"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Enabled: v.GetBool("CSRF_ENABLED"),
			Secret:  v.GetString("CSRF_SECRET"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY"),
		},
		RateLimit: RateLimit{
			Enabled:           v.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerMinute: v.GetInt("RATE_LIMIT_REQUESTS_PER_MINUTE"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}
}
