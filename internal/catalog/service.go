// Package catalog implements the create/read/update/delete rules shared by
// every catalog entity (authors, genres, books).
//
// A Service is configured per entity with its Store, an optional lookup of
// dependent books and an optional natural-key lookup:
//
//	authors := catalog.NewService[entities.Author](catalog.Config[entities.Author]{
//		Kind:       "author",
//		Store:      authorRepo,
//		Dependents: authorRepo.BooksByAuthor,
//	})
//
// Records with dependents are never deleted; Delete reports them instead.
// Records with a FindExisting lookup are created at most once per natural key.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/entities"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned by Update when another record already owns
	// the natural key of the updated one.
	ErrDuplicate = errors.New("record already exists")
)

// Record is the method set every catalog entity pointer provides.
type Record[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
	URL() string
	DisplayName() string
}

// Store persists one entity type. Get, Update and Delete wrap ErrNotFound
// when the id does not exist.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uint) error
}

// DependentsFunc lists the books that reference the record with the given id.
type DependentsFunc func(ctx context.Context, id uint) ([]entities.Book, error)

// LookupFunc returns the stored record sharing the candidate's natural key,
// or nil when there is none.
type LookupFunc[T any] func(ctx context.Context, candidate *T) (*T, error)

// Config wires a Service for one entity type.
type Config[T any] struct {
	Kind         string
	Store        Store[T]
	Dependents   DependentsFunc
	FindExisting LookupFunc[T]
	Recorder     ChangeRecorder
}

// Detail is a record joined with the books that reference it.
type Detail[T any] struct {
	Record *T
	Books  []entities.Book
}

// CreateResult tells whether Create stored a new record or returned an
// existing one with the same natural key.
type CreateResult[T any] struct {
	Record  *T
	Existed bool
}

type Service[T any, P Record[T]] struct {
	cfg Config[T]
}

func NewService[T any, P Record[T]](cfg Config[T]) *Service[T, P] {
	return &Service[T, P]{cfg: cfg}
}

// Kind returns the entity name, e.g. "author".
func (s *Service[T, P]) Kind() string {
	return s.cfg.Kind
}

func (s *Service[T, P]) List(ctx context.Context) ([]T, error) {
	records, err := s.cfg.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.cfg.Kind, err)
	}
	return records, nil
}

func (s *Service[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	return s.cfg.Store.Get(ctx, id)
}

// Detail loads the record and its dependent books concurrently.
func (s *Service[T, P]) Detail(ctx context.Context, id uint) (*Detail[T], error) {
	var detail Detail[T]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record, err := s.cfg.Store.Get(gctx, id)
		if err != nil {
			return err
		}
		detail.Record = record
		return nil
	})
	if s.cfg.Dependents != nil {
		g.Go(func() error {
			books, err := s.cfg.Dependents(gctx, id)
			if err != nil {
				return fmt.Errorf("load books for %s %d: %w", s.cfg.Kind, id, err)
			}
			detail.Books = books
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create stores a new record. When the service has a FindExisting lookup and
// a record with the same natural key exists, that record is returned instead.
func (s *Service[T, P]) Create(ctx context.Context, record *T) (*CreateResult[T], error) {
	if s.cfg.FindExisting != nil {
		existing, err := s.cfg.FindExisting(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("look up existing %s: %w", s.cfg.Kind, err)
		}
		if existing != nil {
			return &CreateResult[T]{Record: existing, Existed: true}, nil
		}
	}

	if err := s.cfg.Store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.cfg.Kind, err)
	}
	s.record(ctx, entities.AuditEventCreate, P(record), 0)
	return &CreateResult[T]{Record: record}, nil
}

// Update replaces the stored fields of record id and returns the stored
// version. A missing id yields ErrNotFound.
func (s *Service[T, P]) Update(ctx context.Context, id uint, record *T) (*T, error) {
	P(record).SetID(id)

	if s.cfg.FindExisting != nil {
		existing, err := s.cfg.FindExisting(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("look up existing %s: %w", s.cfg.Kind, err)
		}
		if existing != nil && P(existing).GetID() != id {
			return nil, fmt.Errorf("%s %q: %w", s.cfg.Kind, P(existing).DisplayName(), ErrDuplicate)
		}
	}

	if err := s.cfg.Store.Update(ctx, record); err != nil {
		return nil, err
	}
	updated, err := s.cfg.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, entities.AuditEventUpdate, P(updated), 0)
	return updated, nil
}

// Delete removes record id unless books still reference it.
//
// The dependency check and the removal are separate statements; a book added
// in between is not detected.
func (s *Service[T, P]) Delete(ctx context.Context, id uint) (*DeleteResult[T], error) {
	detail, err := s.Detail(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &DeleteResult[T]{Outcome: NotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(detail.Books) > 0 {
		s.record(ctx, entities.AuditEventDeleteBlocked, P(detail.Record), len(detail.Books))
		return &DeleteResult[T]{
			Outcome:    BlockedByDependents,
			Record:     detail.Record,
			Dependents: detail.Books,
		}, nil
	}

	if err := s.cfg.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &DeleteResult[T]{Outcome: NotFound}, nil
		}
		return nil, fmt.Errorf("delete %s %d: %w", s.cfg.Kind, id, err)
	}
	s.record(ctx, entities.AuditEventDelete, P(detail.Record), 0)
	return &DeleteResult[T]{Outcome: Deleted, Record: detail.Record}, nil
}

func (s *Service[T, P]) record(ctx context.Context, action entities.AuditEventType, rec P, dependents int) {
	if s.cfg.Recorder == nil {
		return
	}
	s.cfg.Recorder.RecordChange(ctx, Change{
		Kind:       s.cfg.Kind,
		Action:     action,
		ID:         rec.GetID(),
		Name:       rec.DisplayName(),
		Dependents: dependents,
	})
}
