// Package services assembles the catalog services from their repositories.
package services

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/genres"
	"github.com/mrlokans/library/internal/entities"
)

// Catalog holds one service per catalog entity plus the repositories the
// HTTP layer and background tasks query directly.
type Catalog struct {
	Authors *catalog.Service[entities.Author, *entities.Author]
	Genres  *catalog.Service[entities.Genre, *entities.Genre]
	Books   *catalog.Service[entities.Book, *entities.Book]

	AuthorRepo *authors.Repository
	GenreRepo  *genres.Repository
	BookRepo   *books.Repository
}

// NewCatalog wires the services. Authors and genres cannot be deleted while
// books reference them; genres are created at most once per name. recorder
// may be nil.
func NewCatalog(db *gorm.DB, recorder catalog.ChangeRecorder) *Catalog {
	authorRepo := authors.NewRepository(db)
	genreRepo := genres.NewRepository(db)
	bookRepo := books.NewRepository(db)

	return &Catalog{
		Authors: catalog.NewService[entities.Author](catalog.Config[entities.Author]{
			Kind:       "author",
			Store:      authorRepo,
			Dependents: authorRepo.BooksByAuthor,
			Recorder:   recorder,
		}),
		Genres: catalog.NewService[entities.Genre](catalog.Config[entities.Genre]{
			Kind:         "genre",
			Store:        genreRepo,
			Dependents:   genreRepo.BooksByGenre,
			FindExisting: genreRepo.FindExisting,
			Recorder:     recorder,
		}),
		Books: catalog.NewService[entities.Book](catalog.Config[entities.Book]{
			Kind:     "book",
			Store:    bookRepo,
			Recorder: recorder,
		}),
		AuthorRepo: authorRepo,
		GenreRepo:  genreRepo,
		BookRepo:   bookRepo,
	}
}
