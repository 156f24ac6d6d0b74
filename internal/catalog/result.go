package catalog

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
)

// DeleteOutcome is the result of a delete request.
type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	BlockedByDependents
	NotFound
)

func (o DeleteOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case BlockedByDependents:
		return "blocked"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// DeleteResult carries the outcome of Service.Delete. Dependents is only set
// when the outcome is BlockedByDependents.
type DeleteResult[T any] struct {
	Outcome    DeleteOutcome
	Record     *T
	Dependents []entities.Book
}

// Change describes a catalog mutation for the audit trail.
type Change struct {
	Kind       string
	Action     entities.AuditEventType
	ID         uint
	Name       string
	Dependents int
}

// ChangeRecorder receives every successful mutation and every blocked delete.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, change Change)
}
