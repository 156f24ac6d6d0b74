package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditrepo "github.com/mrlokans/library/internal/database/audit"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/sessions"
	"github.com/mrlokans/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests the
	// configured timeout to finish
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after the last request has been served
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	if cfg.Audit.CleanupSchedule != "" {
		if err := scheduler.ValidateSchedule(cfg.Audit.CleanupSchedule); err != nil {
			log.Fatalf("Invalid AUDIT_CLEANUP_SCHEDULE %q: %v", cfg.Audit.CleanupSchedule, err)
		}
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditService.Wait()

	var recorder catalog.ChangeRecorder
	if cfg.Audit.Enabled {
		recorder = auditService
	} else {
		log.Printf("Audit trail disabled")
	}
	cat := services.NewCatalog(db.DB, recorder)

	// Task queue and maintenance schedule
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(tasksDBPath(cfg.Database), tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService, auditService),
			tasks.NewCleanupOrphanLinksQueue(cat.GenreRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := maintenance.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start maintenance scheduler: %v", err)
		}
	} else {
		log.Printf("Task queue disabled, maintenance will not run")
	}

	// Sessions carry flash messages across redirects. Postgres deployments
	// keep them in memory.
	var sessionDB = db
	if cfg.Database.Driver == config.DriverPostgres {
		sessionDB = nil
	}
	sessionManager, err := newSessionManager(sessionDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	var csrfSecret []byte
	if cfg.CSRF.Enabled {
		csrfSecret, err = security.ParseSecret(cfg.CSRF.Secret)
		if err != nil {
			log.Fatalf("Invalid CSRF_SECRET: %v", err)
		}
		if cfg.CSRF.Secret == "" {
			log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
		}
	}

	var rateLimiter *security.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = security.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		defer rateLimiter.Stop()
	}

	if cfg.ReadOnly.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	routerCfg := http_controllers.RouterConfig{
		Authors:        cat.Authors,
		Genres:         cat.Genres,
		Books:          cat.Books,
		GenreFinder:    cat.GenreRepo,
		Counter:        db,
		Pinger:         db,
		AuditReader:    auditService,
		Sessions:       sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		ReadOnly:       cfg.ReadOnly.Enabled,
		RateLimiter:    rateLimiter,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// tasksDBPath places the queue next to the SQLite catalog, or in the working
// directory when the catalog lives in Postgres.
func tasksDBPath(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres || cfg.Path == "" {
		return config.DefaultDatabasePath
	}
	return cfg.Path
}

func newSessionManager(db *database.Database, cfg config.Session) (*sessions.Manager, error) {
	if db == nil {
		return sessions.NewManager(nil, cfg)
	}
	sqlDB, err := db.SQLDB()
	if err != nil {
		return nil, err
	}
	return sessions.NewManager(sqlDB, cfg)
}
