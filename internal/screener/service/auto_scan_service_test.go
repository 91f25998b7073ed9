package service

import (
	"context"
	"testing"

	"golang-idx-screener/internal/screener/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAutoScanService(t *testing.T, cfg *config.Config) AutoScanService {
	t.Helper()
	log := newTestLogger(t)
	scanSvc := NewScanService(&fakeTradingViewRepo{}, log)
	screenerSvc := NewScreenerService(log)
	paramsSvc := NewParamsService(newFakeSettingsRepo(), log)
	return NewAutoScanService(cfg, scanSvc, screenerSvc, paramsSvc, nil, log)
}

func TestAutoScanService_DisabledIsNoOp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Enabled = false
	cfg.Scheduler.Mode = "SWING" // never parsed when disabled

	svc := newAutoScanService(t, cfg)
	assert.NoError(t, svc.Start(context.Background()))
}

func TestAutoScanService_RejectsInvalidMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.CronExpression = "@every 1h"
	cfg.Scheduler.Mode = "SWING"

	svc := newAutoScanService(t, cfg)
	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scheduler mode")
}

func TestAutoScanService_RejectsInvalidCronExpression(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.CronExpression = "not a cron"
	cfg.Scheduler.Mode = "BTST"

	svc := newAutoScanService(t, cfg)
	assert.Error(t, svc.Start(context.Background()))
}

func TestAutoScanService_StartsWithValidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.CronExpression = "@every 1h"
	// empty mode defaults to BTST

	svc := newAutoScanService(t, cfg)
	require.NoError(t, svc.Start(context.Background()))
	svc.Stop()
}
