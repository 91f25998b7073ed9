package service

import (
	"context"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/internal/screener/repository"
	"golang-idx-screener/pkg/common"
	"golang-idx-screener/pkg/logger"
	"golang-idx-screener/pkg/utils"

	cache "github.com/patrickmn/go-cache"
)

// ScanService orchestrates a scan: fetch the raw snapshot, derive every row,
// and atomically replace the in-process snapshot on success. A failed scan
// leaves the last-known snapshot untouched.
type ScanService interface {
	Scan(ctx context.Context) (*dto.ScanResult, error)
	Snapshot() (*dto.ScanResult, bool)
}

// NewScanService creates a new scan service.
func NewScanService(tvRepo repository.TradingViewRepository, log *logger.Logger) ScanService {
	return &scanService{
		tvRepo:    tvRepo,
		logger:    log,
		snapshots: cache.New(cache.NoExpiration, 0),
	}
}

type scanService struct {
	tvRepo    repository.TradingViewRepository
	logger    *logger.Logger
	snapshots *cache.Cache
}

// Scan fetches and derives a fresh row set. If any record in the batch is
// malformed the whole batch is rejected with ErrUnexpectedResponseFormat; no
// partial results are ever produced.
func (s *scanService) Scan(ctx context.Context) (*dto.ScanResult, error) {
	response, err := s.tvRepo.Scan(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Scan failed", logger.ErrorField(err))
		return nil, err
	}

	items := *response.Data
	rows := make([]entity.ScanRow, 0, len(items))
	for _, item := range items {
		row, err := entity.NewScanRow(item.Values)
		if err != nil {
			s.logger.ErrorContext(ctx, "Rejecting scan batch with malformed record",
				logger.StringField("ticker", item.Ticker),
				logger.IntField("fields", len(item.Values)))
			return nil, dto.ErrUnexpectedResponseFormat
		}
		rows = append(rows, row)
	}

	result := &dto.ScanResult{
		Rows:      rows,
		FetchedAt: utils.TimeNowWIB(),
	}
	s.snapshots.Set(common.CacheKeyScanSnapshot, result, cache.NoExpiration)

	s.logger.InfoContext(ctx, "Scan completed", logger.IntField("rows", len(rows)))

	return result, nil
}

// Snapshot returns the most recent successful scan result, if any.
func (s *scanService) Snapshot() (*dto.ScanResult, bool) {
	v, ok := s.snapshots.Get(common.CacheKeyScanSnapshot)
	if !ok {
		return nil, false
	}
	return v.(*dto.ScanResult), true
}
