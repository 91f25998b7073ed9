package service

import (
	"context"
	"fmt"
	"time"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/config"
	"golang-idx-screener/pkg/logger"
	"golang-idx-screener/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// AutoScanService runs the scan on a cron schedule and pushes a Telegram
// summary of the screened result when a notifier is configured. A failed tick
// is logged and simply waits for the next one; there is no retry.
type AutoScanService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewAutoScanService creates the scheduled auto-scan. The notifier may be nil.
func NewAutoScanService(cfg *config.Config, scanSvc ScanService, screenerSvc ScreenerService, paramsSvc ParamsService, notifier telegram.Notifier, log *logger.Logger) AutoScanService {
	return &autoScanService{
		cfg:         cfg,
		scanSvc:     scanSvc,
		screenerSvc: screenerSvc,
		paramsSvc:   paramsSvc,
		notifier:    notifier,
		logger:      log,
		cron:        cron.New(),
	}
}

type autoScanService struct {
	cfg         *config.Config
	scanSvc     ScanService
	screenerSvc ScreenerService
	paramsSvc   ParamsService
	notifier    telegram.Notifier
	logger      *logger.Logger
	cron        *cron.Cron
}

// Start registers the cron entry and starts the scheduler. It is a no-op when
// the scheduler is disabled in config.
func (s *autoScanService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		return nil
	}

	mode := entity.ModeBTST
	if s.cfg.Scheduler.Mode != "" {
		parsed, err := entity.ParseMode(s.cfg.Scheduler.Mode)
		if err != nil {
			return fmt.Errorf("invalid scheduler mode: %w", err)
		}
		mode = parsed
	}

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		s.run(ctx, mode)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Auto-scan scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.CronExpression),
		logger.StringField("mode", string(mode)))
	return nil
}

// Stop stops the scheduler without waiting for a running tick.
func (s *autoScanService) Stop() {
	s.cron.Stop()
}

func (s *autoScanService) run(ctx context.Context, mode entity.Mode) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	result, err := s.scanSvc.Scan(runCtx)
	if err != nil {
		s.logger.ErrorContext(runCtx, "Scheduled scan failed", logger.ErrorField(err))
		return
	}

	params, err := s.paramsSvc.Load(runCtx, mode)
	if err != nil {
		s.logger.ErrorContext(runCtx, "Failed to load params for scheduled scan", logger.ErrorField(err))
		params = s.paramsSvc.GetDefaults(mode)
	}

	screened := s.screenerSvc.FilterAndRank(result.Rows, params.Effective(mode), mode, "", entity.SortKeyValueB, entity.SortOrderDesc)

	s.logger.InfoContext(runCtx, "Scheduled scan completed",
		logger.IntField("rows", len(result.Rows)),
		logger.IntField("screened", len(screened)))

	if s.notifier == nil {
		return
	}
	for _, msg := range telegram.FormatScanResult(mode, screened, result.FetchedAt) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.ErrorContext(runCtx, "Failed to send Telegram notification", logger.ErrorField(err))
		}
	}
}
