package http

import (
	"context"
	"time"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/sessions"
)

// GenreFinder resolves the genre ids submitted with a book form.
type GenreFinder interface {
	FindByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error)
}

// Counter reports how many records of each kind the catalog holds.
type Counter interface {
	Counts(ctx context.Context) (database.Counts, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AuditReader reads the audit trail.
type AuditReader interface {
	GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	History(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error)
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog services
	Authors *catalog.Service[entities.Author, *entities.Author]
	Genres  *catalog.Service[entities.Genre, *entities.Genre]
	Books   *catalog.Service[entities.Book, *entities.Book]

	// Lookups used by the book form
	GenreFinder GenreFinder

	// Home page counts and health checks
	Counter Counter
	Pinger  Pinger

	// Audit trail (optional)
	AuditReader AuditReader

	// Flash messages (optional)
	Sessions *sessions.Manager

	// Form protection
	CSRFSecret    []byte // CSRF protection is off when empty
	SecureCookies bool
	ReadOnly      bool
	RateLimiter   *security.RateLimiter // optional

	RequestTimeout time.Duration

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
