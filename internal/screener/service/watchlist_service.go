package service

import (
	"context"
	"encoding/json"
	"strings"

	"golang-idx-screener/internal/screener/repository"
	"golang-idx-screener/pkg/common"
	"golang-idx-screener/pkg/logger"
)

// WatchlistService manages the ordered, duplicate-free ticker watchlist. The
// whole list is persisted on every mutation.
type WatchlistService interface {
	List(ctx context.Context) ([]string, error)
	Pin(ctx context.Context, ticker string) ([]string, error)
	Remove(ctx context.Context, ticker string) ([]string, error)
	Serialize(tickers []string) string
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(settingsRepo repository.SettingsRepository, log *logger.Logger) WatchlistService {
	return &watchlistService{
		settingsRepo: settingsRepo,
		logger:       log,
	}
}

type watchlistService struct {
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger
}

// List returns the persisted watchlist. A corrupt stored list resets to empty.
func (s *watchlistService) List(ctx context.Context) ([]string, error) {
	raw, found, err := s.settingsRepo.Get(ctx, common.RedisKeyWatchlist)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}

	var tickers []string
	if err := json.Unmarshal([]byte(raw), &tickers); err != nil {
		s.logger.WarnContext(ctx, "Discarding corrupt watchlist", logger.ErrorField(err))
		_ = s.settingsRepo.Delete(ctx, common.RedisKeyWatchlist)
		return []string{}, nil
	}
	return tickers, nil
}

// Pin prepends the ticker if it is not already present.
func (s *watchlistService) Pin(ctx context.Context, ticker string) ([]string, error) {
	tickers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range tickers {
		if t == ticker {
			return tickers, nil
		}
	}

	tickers = append([]string{ticker}, tickers...)
	if err := s.persist(ctx, tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// Remove filters the ticker out. Removing a non-member is a no-op.
func (s *watchlistService) Remove(ctx context.Context, ticker string) ([]string, error) {
	tickers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t != ticker {
			kept = append(kept, t)
		}
	}

	if err := s.persist(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Serialize joins the watchlist into the comma-separated export format.
func (s *watchlistService) Serialize(tickers []string) string {
	return strings.Join(tickers, ",")
}

func (s *watchlistService) persist(ctx context.Context, tickers []string) error {
	raw, err := json.Marshal(tickers)
	if err != nil {
		return err
	}
	if err := s.settingsRepo.Set(ctx, common.RedisKeyWatchlist, string(raw)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist watchlist", logger.ErrorField(err))
		return err
	}
	return nil
}
