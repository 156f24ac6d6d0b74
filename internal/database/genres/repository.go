// Package genres provides database operations for catalog genres.
//
// Genre names are unique by convention rather than by constraint: callers
// look an existing genre up with FindByName before creating one.
//
//	var _ catalog.Store[entities.Genre] = (*Repository)(nil)
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/records"
	"github.com/mrlokans/library/internal/entities"
)

var _ catalog.Store[entities.Genre] = (*Repository)(nil)

type Repository struct {
	*records.Repository[entities.Genre]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: records.New[entities.Genre](db, "genre"),
	}
}

// FindByName returns the genre with exactly this (stored) name, or nil.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Genre, error) {
	// Find, not First: a miss is expected and gorm logs First misses as errors.
	var genres []entities.Genre
	err := r.DB(ctx).Where("name = ?", name).Order("id").Limit(1).Find(&genres).Error
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, nil
	}
	return &genres[0], nil
}

// FindExisting matches a candidate genre by name. It satisfies
// catalog.LookupFunc.
func (r *Repository) FindExisting(ctx context.Context, candidate *entities.Genre) (*entities.Genre, error) {
	return r.FindByName(ctx, candidate.Name)
}

// FindByIDs loads the genres with the given ids. Unknown ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []entities.Genre
	err := r.DB(ctx).Where("id IN ?", ids).Order("id").Find(&genres).Error
	return genres, err
}

// BooksByGenre lists the books tagged with the genre, by title.
func (r *Repository) BooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.DB(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title").
		Find(&books).Error
	return books, err
}

// DeleteOrphanLinks removes book_genres rows whose book or genre no longer
// exists. Such rows appear when a genre is deleted while a book is being
// tagged with it.
func (r *Repository) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	result := r.DB(ctx).Exec(`DELETE FROM book_genres
		WHERE genre_id NOT IN (SELECT id FROM genres)
		   OR book_id NOT IN (SELECT id FROM books)`)
	return result.RowsAffected, result.Error
}
