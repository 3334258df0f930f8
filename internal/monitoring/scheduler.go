// Package monitoring runs periodic background jobs.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/auth"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ActionBackupInventory is the audit action written by every inventory run.
const ActionBackupInventory = "backup_inventory"

const jobTimeout = time.Minute

// InventoryObserver receives the totals of each inventory run.
type InventoryObserver interface {
	ObserveInventory(files int, bytes int64)
}

// Scheduler periodically takes an inventory of the backup directory and
// records the result in the audit log.
type Scheduler struct {
	backupSvc services.BackupServiceProvider
	auditor   auth.Auditor
	observer  InventoryObserver
	cron      *cron.Cron
	spec      string
}

// NewScheduler creates a scheduler for the given cron spec. Standard five
// field expressions and descriptors such as "@hourly" are accepted.
func NewScheduler(spec string, backupSvc services.BackupServiceProvider, auditor auth.Auditor, observer InventoryObserver) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid backup inventory schedule %q: %w", spec, err)
	}
	s := &Scheduler{
		backupSvc: backupSvc,
		auditor:   auditor,
		observer:  observer,
		cron:      cron.New(),
		spec:      spec,
	}
	if _, err := s.cron.AddFunc(spec, s.runJob); err != nil {
		return nil, fmt.Errorf("register backup inventory job: %w", err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	log.Info().Str("schedule", s.spec).Msg("Starting backup inventory scheduler")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped backup inventory scheduler")
}

func (s *Scheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.RunInventory(ctx); err != nil {
		log.Error().Err(err).Msg("Backup inventory failed")
	}
}

// RunInventory lists the backups once, publishes the totals and writes an
// audit entry.
func (s *Scheduler) RunInventory(ctx context.Context) error {
	backups, err := s.backupSvc.ListBackups(ctx)
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	var total int64
	for _, b := range backups {
		total += b.Size
	}
	if s.observer != nil {
		s.observer.ObserveInventory(len(backups), total)
	}

	req := models.RequestContext{IP: "system", UserAgent: "scheduler"}
	metadata := map[string]any{"count": len(backups), "bytes": total}
	if err := s.auditor.LogAction(ctx, req, ActionBackupInventory, metadata); err != nil {
		return fmt.Errorf("audit backup inventory: %w", err)
	}

	log.Info().Int("count", len(backups)).Int64("bytes", total).Msg("Backup inventory complete")
	return nil
}
