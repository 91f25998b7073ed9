package service

import (
	"context"
	"encoding/json"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/internal/screener/repository"
	"golang-idx-screener/pkg/common"
	"golang-idx-screener/pkg/logger"
)

// ParamsService manages the per-mode scanner params document. Both modes live
// in one persisted document; saving one mode leaves the other untouched.
// Corrupt persisted state is discarded and replaced with defaults, never
// surfaced to the caller.
type ParamsService interface {
	GetDefaults(mode entity.Mode) entity.ScannerParams
	Load(ctx context.Context, mode entity.Mode) (entity.ScannerParams, error)
	Save(ctx context.Context, mode entity.Mode, patch dto.ScannerParamsPatch) (entity.ScannerParams, error)
}

// NewParamsService creates a new params service.
func NewParamsService(settingsRepo repository.SettingsRepository, log *logger.Logger) ParamsService {
	return &paramsService{
		settingsRepo: settingsRepo,
		logger:       log,
	}
}

type paramsService struct {
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger
}

// GetDefaults returns the hardcoded baseline for a mode.
func (s *paramsService) GetDefaults(mode entity.Mode) entity.ScannerParams {
	return entity.DefaultParams(mode)
}

// Load returns the persisted params for a mode, falling back to defaults when
// nothing is stored, the stored document is corrupt, or the mode is absent.
func (s *paramsService) Load(ctx context.Context, mode entity.Mode) (entity.ScannerParams, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return entity.ScannerParams{}, err
	}
	return doc[mode], nil
}

// Save merges the patch into the stored params for one mode and persists the
// whole two-mode document. No field-range validation is performed.
func (s *paramsService) Save(ctx context.Context, mode entity.Mode, patch dto.ScannerParamsPatch) (entity.ScannerParams, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return entity.ScannerParams{}, err
	}

	doc[mode] = patch.Apply(doc[mode])

	raw, err := json.Marshal(doc)
	if err != nil {
		return entity.ScannerParams{}, err
	}
	if err := s.settingsRepo.Set(ctx, common.RedisKeyScannerParams, string(raw)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist scanner params", logger.ErrorField(err))
		return entity.ScannerParams{}, err
	}

	s.logger.InfoContext(ctx, "Scanner params saved", logger.StringField("mode", string(mode)))

	return doc[mode], nil
}

// loadDocument reads the full two-mode document, starting from defaults and
// overlaying whatever is stored. A corrupt document is deleted and reset.
func (s *paramsService) loadDocument(ctx context.Context) (map[entity.Mode]entity.ScannerParams, error) {
	doc := map[entity.Mode]entity.ScannerParams{
		entity.ModeBTST: entity.DefaultParams(entity.ModeBTST),
		entity.ModeBPJS: entity.DefaultParams(entity.ModeBPJS),
	}

	raw, found, err := s.settingsRepo.Get(ctx, common.RedisKeyScannerParams)
	if err != nil {
		return nil, err
	}
	if !found {
		return doc, nil
	}

	var stored map[entity.Mode]entity.ScannerParams
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.WarnContext(ctx, "Discarding corrupt scanner params", logger.ErrorField(err))
		_ = s.settingsRepo.Delete(ctx, common.RedisKeyScannerParams)
		return doc, nil
	}

	for mode, params := range stored {
		if mode == entity.ModeBTST || mode == entity.ModeBPJS {
			doc[mode] = params
		}
	}
	return doc, nil
}
