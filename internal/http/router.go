package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/forms"
	"github.com/mrlokans/library/internal/readonly"
	"github.com/mrlokans/library/internal/security"
)

// TemplateFuncs are the helpers every page template may call.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Stored text is already escaped; unescape it once so the template
		// engine does not escape it a second time.
		"unescape":   forms.Unsanitize,
		"formatDate": forms.FormatDate,
	}
}

// LoadTemplates parses every page template under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseGlob(dir + "/*.html")
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(TimeoutMiddleware(cfg.RequestTimeout))

	// Apply security headers to all responses
	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before sessions so the session context survives
	// CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.Middleware())
	}

	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	tmpl := template.Must(LoadTemplates(cfg.TemplatesPath))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	pages := pageRenderer{sessions: cfg.Sessions}

	health := NewHealthController(cfg.Pinger, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	index := NewIndexController(pages, cfg.Counter)
	router.GET("/", index.Root)

	catalog := router.Group("/catalog")
	catalog.GET("", index.Home)

	NewAuthorsController(pages, cfg.Authors).Register(catalog)
	NewGenresController(pages, cfg.Genres).Register(catalog)
	NewBooksController(pages, cfg.Books, cfg.Authors, cfg.Genres, cfg.GenreFinder).Register(catalog)

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		router.GET("/api/audit", auditController.GetAuditEvents)
		router.GET("/api/audit/:kind/:id", auditController.GetHistory)
	}

	router.NoRoute(func(c *gin.Context) {
		pages.errorPage(c, http.StatusNotFound, "Page not found.")
	})

	return router
}
