package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBackup = `{
	"backupDate": "2025-06-01T12:00:00Z",
	"portfolio": {"projects": [{"id": 1}, {"id": 2}, {"id": 3}]},
	"services": {"serviceTiers": [
		{"name": "basic", "services": ["a", "b"]},
		{"name": "pro", "services": ["c"]},
		{"name": "empty"}
	]}
}`

func writeBackup(t *testing.T, dir, name, body string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestListBackupsCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	svc := NewBackupService(dir)

	backups, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.NotNil(t, backups)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// A second call against the now existing directory is fine too.
	_, err = svc.ListBackups(context.Background())
	require.NoError(t, err)
}

func TestListBackupsSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeBackup(t, dir, "backup-good.json", sampleBackup, now)
	writeBackup(t, dir, "backup-broken.json", `{"portfolio": [`, now)
	writeBackup(t, dir, "backup-scalar.json", `42`, now)
	writeBackup(t, dir, "backup-array.json", `[]`, now)
	writeBackup(t, dir, "notes.json", sampleBackup, now)
	writeBackup(t, dir, "backup-old.txt", sampleBackup, now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backup-dir.json"), 0755))

	backups, err := NewBackupService(dir).ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 1)

	b := backups[0]
	assert.Equal(t, "backup-good.json", b.Filename)
	assert.Equal(t, "2025-06-01T12:00:00Z", b.BackupDate)
	assert.Equal(t, 3, b.PortfolioCount)
	assert.Equal(t, 3, b.ServicesCount)
	assert.Equal(t, int64(len(sampleBackup)), b.Size)
}

func TestListBackupsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	writeBackup(t, dir, "backup-b.json", `{}`, base.Add(2*time.Hour))
	writeBackup(t, dir, "backup-a.json", `{}`, base)
	writeBackup(t, dir, "backup-c.json", `{}`, base.Add(time.Hour))

	backups, err := NewBackupService(dir).ListBackups(context.Background())
	require.NoError(t, err)

	var names []string
	for _, b := range backups {
		names = append(names, b.Filename)
	}
	assert.Equal(t, []string{"backup-b.json", "backup-c.json", "backup-a.json"}, names)
}

func TestListBackupsDirectoryFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewBackupService(file).ListBackups(context.Background())
	assert.Error(t, err)
}

func TestSummarizeBackup(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   bool
		portfolio int
		services  int
		date      string
	}{
		{name: "empty object", doc: `{}`},
		{name: "null date", doc: `{"backupDate": null}`},
		{name: "projects not array", doc: `{"portfolio": {"projects": "x"}}`},
		{name: "tiers not array", doc: `{"services": {"serviceTiers": {"services": [1]}}}`},
		{name: "full", doc: sampleBackup, portfolio: 3, services: 3, date: "2025-06-01T12:00:00Z"},
		{name: "array root", doc: `[1,2]`, wantErr: true},
		{name: "empty array root", doc: `[]`, wantErr: true},
		{name: "number root", doc: `5`, wantErr: true},
		{name: "string root", doc: `"backup"`, wantErr: true},
		{name: "null root", doc: `null`, wantErr: true},
		{name: "truncated", doc: `{"a":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := SummarizeBackup([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.portfolio, meta.PortfolioCount)
			assert.Equal(t, tt.services, meta.ServicesCount)
			assert.Equal(t, tt.date, meta.BackupDate)
		})
	}
}

func TestSummarizeBackupRejectsNonObjectRoot(t *testing.T) {
	for _, doc := range []string{`[]`, `[{"portfolio":{"projects":[1]}}]`, `5`, `true`} {
		_, err := SummarizeBackup([]byte(doc))
		assert.ErrorIs(t, err, errNotObject, doc)
	}
}
