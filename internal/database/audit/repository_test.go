package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	id := uint(3)
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "genre_create",
		Description: "Created genre: Fantasy",
		EntityType:  "genre",
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType: entities.AuditEventCreate,
			Action:    "author_create",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(ctx, event))
	}
	for i := 0; i < 5; i++ {
		event := &entities.AuditEvent{
			EventType: entities.AuditEventDelete,
			Action:    "author_delete",
			Status:    entities.AuditStatusSuccess,
		}
		require.NoError(t, repo.LogEvent(ctx, event))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, "", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, "", 10, 15)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 5)
	})

	t.Run("filter by type", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, entities.AuditEventDelete, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, events, 5)
	})

	t.Run("most recent first", func(t *testing.T) {
		events, _, err := repo.GetEvents(ctx, entities.AuditEventCreate, 50, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
		}
	})
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	one, two := uint(1), uint(2)
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "genre", EntityID: &one}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EventType: entities.AuditEventUpdate, EntityType: "genre", EntityID: &one}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "author", EntityID: &one}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "genre", EntityID: &two}))

	events, err := repo.GetEventsForEntity(ctx, "genre", 1)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			EventType: entities.AuditEventCreate,
			CreatedAt: time.Now().AddDate(0, 0, -40),
		}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{EventType: entities.AuditEventCreate}))
	}

	deleted, err := repo.DeleteOldEvents(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)

	_, total, err := repo.GetEvents(ctx, "", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
