package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/genres"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// =============================================================================
// Catalog Stores
// =============================================================================

var _ catalog.Store[entities.Author] = (*authors.Repository)(nil)
var _ catalog.Store[entities.Genre] = (*genres.Repository)(nil)
var _ catalog.Store[entities.Book] = (*books.Repository)(nil)

// Dependency and natural-key lookups
var _ catalog.DependentsFunc = (*authors.Repository)(nil).BooksByAuthor
var _ catalog.DependentsFunc = (*genres.Repository)(nil).BooksByGenre
var _ catalog.LookupFunc[entities.Genre] = (*genres.Repository)(nil).FindExisting

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.GenreFinder = (*genres.Repository)(nil)
var _ http.Counter = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.AuditReader = (*audit.Service)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ catalog.ChangeRecorder = (*audit.Service)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.MaintenanceLogger = (*audit.Service)(nil)
var _ tasks.OrphanLinksCleaner = (*genres.Repository)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
