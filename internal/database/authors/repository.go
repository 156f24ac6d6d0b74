// Package authors provides database operations for catalog authors.
//
// # Interface Implementation
//
//	var _ catalog.Store[entities.Author] = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	books, err := repo.BooksByAuthor(ctx, authorID)
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/records"
	"github.com/mrlokans/library/internal/entities"
)

var _ catalog.Store[entities.Author] = (*Repository)(nil)

// Repository handles author persistence. Authors are listed by family name.
type Repository struct {
	*records.Repository[entities.Author]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: records.New[entities.Author](db, "author",
			records.WithOrder[entities.Author]("family_name, first_name, id"),
		),
	}
}

// BooksByAuthor lists the books written by the author, by title.
func (r *Repository) BooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.DB(ctx).
		Where("author_id = ?", authorID).
		Order("title").
		Find(&books).Error
	return books, err
}
