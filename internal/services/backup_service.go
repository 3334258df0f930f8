package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// BackupFilePattern matches the files produced by the site backup job.
const BackupFilePattern = "backup-*.json"

// maxParallelReads bounds the per-file fan-out while listing.
const maxParallelReads = 8

var errNotObject = errors.New("backup document is not a JSON object")

// BackupServiceProvider defines the interface for backup services.
type BackupServiceProvider interface {
	ListBackups(ctx context.Context) ([]models.BackupMetadata, error)
}

// BackupService reads backup documents from a directory. It never writes to them.
type BackupService struct {
	backupPath string
}

// NewBackupService creates a new BackupService.
func NewBackupService(backupPath string) *BackupService {
	return &BackupService{backupPath: backupPath}
}

// ListBackups returns metadata for every readable backup file, newest first.
// A file that cannot be stat'ed or parsed is logged and left out; only a
// failure to read the directory itself is returned.
func (s *BackupService) ListBackups(ctx context.Context) ([]models.BackupMetadata, error) {
	if err := os.MkdirAll(s.backupPath, 0755); err != nil {
		return nil, fmt.Errorf("could not ensure backup directory: %w", err)
	}

	entries, err := os.ReadDir(s.backupPath)
	if err != nil {
		return nil, fmt.Errorf("could not read backup directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(BackupFilePattern, e.Name()); ok {
			candidates = append(candidates, e.Name())
		}
	}

	var (
		mu      sync.Mutex
		backups = make([]models.BackupMetadata, 0, len(candidates))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for _, name := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			meta, err := s.readMetadata(name)
			if err != nil {
				log.Warn().Err(err).Str("file", name).Msg("Skipping unreadable backup file")
				return nil
			}
			mu.Lock()
			backups = append(backups, meta)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	slices.SortFunc(backups, func(a, b models.BackupMetadata) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.Filename, b.Filename)
	})
	return backups, nil
}

func (s *BackupService) readMetadata(name string) (models.BackupMetadata, error) {
	path := filepath.Join(s.backupPath, name)

	fi, err := os.Stat(path)
	if err != nil {
		return models.BackupMetadata{}, fmt.Errorf("stat: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.BackupMetadata{}, fmt.Errorf("read: %w", err)
	}

	summary, err := SummarizeBackup(data)
	if err != nil {
		return models.BackupMetadata{}, err
	}

	summary.Filename = name
	summary.Size = fi.Size()
	summary.Created = fileCreated(fi)
	summary.Modified = fi.ModTime()
	return summary, nil
}

// SummarizeBackup extracts the counts shown in the listing from a backup document.
func SummarizeBackup(data []byte) (models.BackupMetadata, error) {
	if !gjson.ValidBytes(data) {
		return models.BackupMetadata{}, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return models.BackupMetadata{}, errNotObject
	}

	var meta models.BackupMetadata
	if date := doc.Get("backupDate"); date.Exists() && date.Type != gjson.Null {
		meta.BackupDate = date.String()
	}
	if projects := doc.Get("portfolio.projects"); projects.IsArray() {
		meta.PortfolioCount = len(projects.Array())
	}
	if tiers := doc.Get("services.serviceTiers"); tiers.IsArray() {
		for _, tier := range tiers.Array() {
			if svcs := tier.Get("services"); svcs.IsArray() {
				meta.ServicesCount += len(svcs.Array())
			}
		}
	}
	return meta, nil
}
