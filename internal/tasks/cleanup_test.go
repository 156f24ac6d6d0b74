package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (f *fakeAuditCleaner) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, f.err
}

type fakeMaintenanceLogger struct {
	action      string
	description string
	err         error
}

func (f *fakeMaintenanceLogger) LogMaintenance(ctx context.Context, action, description string, err error) {
	f.action = action
	f.description = description
	f.err = err
}

type fakeLinksCleaner struct {
	calls int
	err   error
}

func (f *fakeLinksCleaner) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	f.calls++
	return 2, f.err
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{RetentionDays: 7}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fakeAuditCleaner{deleted: 12}
		logger := &fakeMaintenanceLogger{}

		err := CleanupAuditEventsProcessor(cleaner, logger)(ctx, CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
		assert.Equal(t, "audit_cleanup", logger.action)
		assert.Contains(t, logger.description, "Removed 12 audit events")
	})

	t.Run("defaults to thirty days", func(t *testing.T) {
		cleaner := &fakeAuditCleaner{}

		err := CleanupAuditEventsProcessor(cleaner, nil)(ctx, CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("reports failures", func(t *testing.T) {
		cleaner := &fakeAuditCleaner{err: errors.New("locked")}
		logger := &fakeMaintenanceLogger{}

		err := CleanupAuditEventsProcessor(cleaner, logger)(ctx, CleanupAuditEventsTask{RetentionDays: 1})
		assert.ErrorContains(t, err, "locked")
		assert.EqualError(t, logger.err, "locked")
	})

	t.Run("requires cleaner", func(t *testing.T) {
		err := CleanupAuditEventsProcessor(nil, nil)(ctx, CleanupAuditEventsTask{})
		assert.Error(t, err)
	})
}

func TestCleanupOrphanLinksProcessor(t *testing.T) {
	ctx := context.Background()

	cleaner := &fakeLinksCleaner{}
	require.NoError(t, CleanupOrphanLinksProcessor(cleaner)(ctx, CleanupOrphanLinksTask{}))
	assert.Equal(t, 1, cleaner.calls)

	cleaner.err = errors.New("boom")
	assert.ErrorContains(t, CleanupOrphanLinksProcessor(cleaner)(ctx, CleanupOrphanLinksTask{}), "boom")

	assert.Equal(t, "cleanup_orphan_links", CleanupOrphanLinksTask{}.Config().Name)
}
