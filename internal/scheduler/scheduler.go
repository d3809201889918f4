package scheduler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fleettrack/internal/config"
	"fleettrack/internal/repository/csvstore"
)

// Scheduler manages the periodic snapshot backup of the record store file.
type Scheduler struct {
	cron   *cron.Cron
	store  csvstore.Repository
	cfg    config.BackupConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.BackupConfig, store csvstore.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the backup job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runBackup); err != nil {
		s.logger.Error("failed to schedule backup", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runBackup() {
	path, err := s.Backup(time.Now())
	if err != nil {
		// Backup failures are logged, never fatal.
		s.logger.Error("backup failed", zap.Error(err))
		return
	}
	s.logger.Info("backup written", zap.String("path", path))
}

// Backup copies the store file to a timestamped snapshot in the backup
// directory and returns the snapshot path.
func (s *Scheduler) Backup(now time.Time) (string, error) {
	if err := s.store.EnsureInitialized(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	src, err := os.Open(s.store.Path())
	if err != nil {
		return "", fmt.Errorf("open store file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("vehicle_status-%s.csv", now.Format("20060102-150405"))
	dstPath := filepath.Join(s.cfg.Dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("copy snapshot: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}

	return dstPath, nil
}
