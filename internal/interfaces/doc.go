// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog Rules
//
//   - catalog.Store[T]: persistence of one entity type (internal/catalog/service.go)
//   - catalog.DependentsFunc: books that block a delete
//   - catalog.LookupFunc[T]: natural-key lookup used for find-or-create
//   - catalog.ChangeRecorder: receives every mutation and blocked delete
//
// ## HTTP Dependencies
//
//   - GenreFinder, Counter, Pinger, AuditReader (internal/http/config.go)
//
// ## Background Work
//
//   - tasks.AuditEventCleaner, tasks.MaintenanceLogger, tasks.OrphanLinksCleaner
//   - scheduler.Enqueuer: anything that can save backlite tasks
//
// # Adding a New Catalog Entity
//
// To add an entity (e.g., book copies):
//
//  1. Add the model to internal/entities/catalog.go with GetID, SetID, URL
//     and DisplayName, and register it in database.Open's AutoMigrate list.
//
//  2. Create a sub-package internal/database/copies/ embedding the generic
//     repository:
//
//     type Repository struct {
//         *records.Repository[entities.BookCopy]
//     }
//
//  3. Wire a service in internal/services/catalog.go:
//
//     catalog.NewService[entities.BookCopy](catalog.Config[entities.BookCopy]{
//         Kind:  "bookcopy",
//         Store: copyRepo,
//     })
//
//  4. Add a form type in internal/forms/ and a controller in internal/http/
//     built on newResourceController, plus the four page templates.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
