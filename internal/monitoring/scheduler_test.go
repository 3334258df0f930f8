package monitoring

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/database"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	files int
	bytes int64
	calls int
}

func (r *recordingObserver) ObserveInventory(files int, bytes int64) {
	r.files, r.bytes = files, bytes
	r.calls++
}

type brokenLister struct{}

func (brokenLister) ListBackups(context.Context) ([]models.BackupMetadata, error) {
	return nil, errors.New("disk gone")
}

func newAuditService(t *testing.T) *services.AuditService {
	t.Helper()
	db, err := database.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return services.NewAuditService(db)
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", brokenLister{}, newAuditService(t), nil)
	assert.Error(t, err)
}

func TestRunInventoryAuditsTotals(t *testing.T) {
	dir := t.TempDir()
	good := `{"backupDate":"2025-01-01","portfolio":{"projects":[1,2]},"serviceTiers":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup-1.json"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup-2.json"), []byte("{broken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	audit := newAuditService(t)
	observer := &recordingObserver{}
	s, err := NewScheduler("@hourly", services.NewBackupService(dir), audit, observer)
	require.NoError(t, err)

	require.NoError(t, s.RunInventory(t.Context()))

	assert.Equal(t, 1, observer.calls)
	assert.Equal(t, 1, observer.files)
	assert.Equal(t, int64(len(good)), observer.bytes)

	entries, err := audit.GetRecentEntries(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionBackupInventory, entries[0].Action)
	assert.Equal(t, "system", entries[0].Request.IP)
	assert.EqualValues(t, 1, entries[0].Metadata["count"])
}

func TestRunInventoryListFailure(t *testing.T) {
	audit := newAuditService(t)
	observer := &recordingObserver{}
	s, err := NewScheduler("*/5 * * * *", brokenLister{}, audit, observer)
	require.NoError(t, err)

	assert.ErrorContains(t, s.RunInventory(t.Context()), "disk gone")
	assert.Zero(t, observer.calls)

	entries, err := audit.GetRecentEntries(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler("@daily", brokenLister{}, newAuditService(t), nil)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
