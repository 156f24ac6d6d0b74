// Package records provides a generic gorm repository for catalog entities.
//
// Entity-specific repositories (authors, genres, books) embed it and add
// their own queries:
//
//	type Repository struct {
//		*records.Repository[entities.Author]
//	}
package records

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/catalog"
)

// Repository implements catalog.Store for one entity type.
type Repository[T any] struct {
	db       *gorm.DB
	kind     string
	order    string
	preloads []string
}

type Option[T any] func(*Repository[T])

// WithOrder sets the ORDER BY clause used by List.
func WithOrder[T any](order string) Option[T] {
	return func(r *Repository[T]) {
		r.order = order
	}
}

// WithPreload eager-loads an association on List and Get.
func WithPreload[T any](association string) Option[T] {
	return func(r *Repository[T]) {
		r.preloads = append(r.preloads, association)
	}
}

func New[T any](db *gorm.DB, kind string, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{db: db, kind: kind, order: "id"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DB returns a session bound to ctx.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Kind returns the entity name used in error messages.
func (r *Repository[T]) Kind() string {
	return r.kind
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	err := r.query(ctx).Order(r.order).Find(&records).Error
	return records, err
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var record T
	err := r.query(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

// Update overwrites every column except the id and creation time.
func (r *Repository[T]) Update(ctx context.Context, record *T) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound(idOf(record))
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	var record T
	result := r.db.WithContext(ctx).Delete(&record, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var record T
	err := r.db.WithContext(ctx).Model(&record).Count(&count).Error
	return count, err
}

// NotFound returns an error wrapping catalog.ErrNotFound for id.
func (r *Repository[T]) NotFound(id uint) error {
	return r.notFound(id)
}

func (r *Repository[T]) notFound(id uint) error {
	return fmt.Errorf("%s %d: %w", r.kind, id, catalog.ErrNotFound)
}

func idOf(record any) uint {
	if rec, ok := record.(interface{ GetID() uint }); ok {
		return rec.GetID()
	}
	return 0
}
