// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (SQLite or Postgres), migrations, counts
//	├── records/         # Generic CRUD repository shared by the catalog entities
//	├── authors/         # Authors and the books they wrote
//	├── genres/          # Genres, name lookup and book_genres maintenance
//	├── books/           # Books and their genre links
//	└── audit/           # Audit trail of catalog changes
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./library.db")
//
//	// Create domain-specific repositories
//	authorRepo := authors.NewRepository(db.DB)
//	genreRepo := genres.NewRepository(db.DB)
//
//	// Use repositories
//	author, err := authorRepo.Get(ctx, 123)
//	books, err := genreRepo.BooksByGenre(ctx, genreID)
//
// # Interface Implementations
//
//   - authors.Repository, genres.Repository, books.Repository: catalog.Store
//   - genres.Repository: http.GenreFinder, tasks.OrphanLinksCleaner
//   - Database: http.Counter, http.Pinger
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Embed *records.Repository[T] or define a Repository with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the model to the AutoMigrate list in Open
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
