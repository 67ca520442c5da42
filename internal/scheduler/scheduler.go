package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/pkg/clients/whatsapp"
)

const jobTimeout = 2 * time.Minute

// SheetSyncer ingests a spreadsheet source.
type SheetSyncer interface {
	SyncSheet(ctx context.Context, src ingestion.SheetSource) (models.IngestResult, error)
}

// Digester renders the recent alerts as text.
type Digester interface {
	AlertDigest(ctx context.Context) (string, error)
}

// Deps are the collaborators of the scheduled jobs. A nil Sheet or Notifier disables the matching job.
type Deps struct {
	Syncer   SheetSyncer
	Sheet    ingestion.SheetSource
	Digester Digester
	Notifier whatsapp.Client
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	deps   Deps
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a scheduler whose cron expressions are evaluated in the reporting timezone.
func NewScheduler(cfg config.Config, deps Deps, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(cfg.Location())),
		deps:   deps,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the enabled jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.deps.Sheet != nil && s.deps.Syncer != nil {
		if _, err := s.cron.AddFunc(s.cfg.Sheets.SyncCron, s.job("sheet sync", s.RunSheetSync)); err != nil {
			return fmt.Errorf("schedule sheet sync %q: %w", s.cfg.Sheets.SyncCron, err)
		}
		s.logger.Info("sheet sync scheduled", zap.String("cron", s.cfg.Sheets.SyncCron))
	}

	if s.deps.Notifier != nil && s.deps.Digester != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.AlertsCron, s.job("alert digest", s.SendAlertDigest)); err != nil {
			return fmt.Errorf("schedule alert digest %q: %w", s.cfg.Reporting.AlertsCron, err)
		}
		s.logger.Info("alert digest scheduled", zap.String("cron", s.cfg.Reporting.AlertsCron))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) job(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := run(ctx); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

// RunSheetSync ingests the configured Google Sheet once.
func (s *Scheduler) RunSheetSync(ctx context.Context) error {
	if s.deps.Sheet == nil || s.deps.Syncer == nil {
		return errors.New("sheet sync is not configured")
	}

	result, err := s.deps.Syncer.SyncSheet(ctx, s.deps.Sheet)
	if err != nil {
		return err
	}

	s.logger.Info("sheet synced",
		zap.Int("days_inserted", result.DaysInserted),
		zap.Int("rows_skipped", result.RowsSkipped))
	return nil
}

// SendAlertDigest sends the current alert digest to the configured recipient.
func (s *Scheduler) SendAlertDigest(ctx context.Context) error {
	if s.deps.Notifier == nil || s.deps.Digester == nil {
		return errors.New("alert digest is not configured")
	}

	digest, err := s.deps.Digester.AlertDigest(ctx)
	if err != nil {
		return fmt.Errorf("render alert digest: %w", err)
	}

	if _, err := s.deps.Notifier.SendTextMessage(ctx, whatsapp.SendTextMessageRequest{
		To:   s.cfg.WhatsApp.AlertRecipient,
		Body: digest,
	}); err != nil {
		return fmt.Errorf("send alert digest: %w", err)
	}

	s.logger.Info("alert digest sent")
	return nil
}
