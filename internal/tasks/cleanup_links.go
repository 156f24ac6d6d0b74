package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanLinksCleaner removes book/genre links whose book or genre is gone.
type OrphanLinksCleaner interface {
	DeleteOrphanLinks(ctx context.Context) (int64, error)
}

// CleanupOrphanLinksTask repairs book_genres rows left behind when a genre
// was deleted while a book was being tagged with it.
type CleanupOrphanLinksTask struct{}

// Config returns the queue configuration for link cleanup tasks.
func (t CleanupOrphanLinksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_links",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanLinksProcessor creates a processor function for CleanupOrphanLinksTask.
func CleanupOrphanLinksProcessor(cleaner OrphanLinksCleaner) backlite.QueueProcessor[CleanupOrphanLinksTask] {
	return func(ctx context.Context, task CleanupOrphanLinksTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan links cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanLinks(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphan links: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan book/genre links", deleted)
		return nil
	}
}

// NewCleanupOrphanLinksQueue creates a backlite queue for link cleanup tasks.
func NewCleanupOrphanLinksQueue(cleaner OrphanLinksCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanLinksProcessor(cleaner))
}
