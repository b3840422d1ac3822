package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/config"
	"github.com/genapagie/ovinpro/internal/domain/models"
	"github.com/genapagie/ovinpro/internal/service/backup"
)

// UserLister enumerates the accounts to snapshot.
type UserLister interface {
	GetUsers(ctx context.Context) ([]models.User, error)
}

// Scheduler runs the nightly backup snapshots: one export document per user,
// written under the configured backup directory.
type Scheduler struct {
	cron      *cron.Cron
	backupSvc *backup.Service
	users     UserLister
	cfg       config.BackupConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.BackupConfig, backupSvc *backup.Service, users UserLister, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		backupSvc: backupSvc,
		users:     users,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.snapshotAll); err != nil {
		s.logger.Error("failed to schedule backup snapshots", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// snapshotAll exports every user's core profile. A failing user is logged
// and skipped; the job keeps going.
func (s *Scheduler) snapshotAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.logger.Error("failed to create backup directory", zap.Error(err))
		return
	}

	users, err := s.users.GetUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users for snapshot", zap.Error(err))
		return
	}

	var written int
	for _, user := range users {
		doc, err := s.backupSvc.Export(ctx, user.ID)
		if err != nil {
			s.logger.Error("failed to export user", zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			s.logger.Error("failed to encode snapshot", zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		path := filepath.Join(s.cfg.Dir, backup.Filename(user.ID, doc.ExportDate))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			s.logger.Error("failed to write snapshot", zap.String("path", path), zap.Error(err))
			continue
		}
		written++
	}

	s.logger.Info("backup snapshots written",
		zap.Int("users", len(users)), zap.Int("written", written))
}
