// Package books provides database operations for catalog books.
//
// A book belongs to one author and is tagged with any number of genres
// through the book_genres join table. Only the join rows are written here;
// authors and genres are never created or modified through a book.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Get(ctx, 123)
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/records"
	"github.com/mrlokans/library/internal/entities"
)

var _ catalog.Store[entities.Book] = (*Repository)(nil)

// Repository handles book persistence. Books are listed by title with their
// author and genres preloaded.
type Repository struct {
	*records.Repository[entities.Book]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: records.New[entities.Book](db, "book",
			records.WithOrder[entities.Book]("title, id"),
			records.WithPreload[entities.Book]("Author"),
			records.WithPreload[entities.Book]("Genres"),
		),
	}
}

// Create inserts the book and links it to book.Genres by id.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			return err
		}
		return linkGenres(tx, book.ID, book.Genres)
	})
}

// Update overwrites the book's fields and replaces its genre links.
func (r *Repository) Update(ctx context.Context, book *entities.Book) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(book).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(book)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.NotFound(book.ID)
		}

		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", book.ID).Error; err != nil {
			return fmt.Errorf("unlink genres: %w", err)
		}
		return linkGenres(tx, book.ID, book.Genres)
	})
}

// Delete removes the book and its genre links.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlink genres: %w", err)
		}
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.NotFound(id)
		}
		return nil
	})
}

func linkGenres(tx *gorm.DB, bookID uint, genres []entities.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(genres))
	rows := make([]map[string]any, 0, len(genres))
	for _, g := range genres {
		if g.ID == 0 || seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		rows = append(rows, map[string]any{"book_id": bookID, "genre_id": g.ID})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Table("book_genres").Create(&rows).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}
