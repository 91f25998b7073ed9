package service

import (
	"sort"
	"strings"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/pkg/logger"
)

// Page sizes the API accepts. Anything else normalizes to the default.
const (
	DefaultPageSize = 25
	LargePageSize   = 50
)

// ScreenerService is the pure filter/rank/paginate pipeline. It holds no state
// and recomputes the view from its inputs on every call.
type ScreenerService interface {
	FilterAndRank(rows []entity.ScanRow, effective entity.ScannerParams, mode entity.Mode, search string, sortKey entity.SortKey, sortOrder entity.SortOrder) []entity.ScanRow
	Paginate(rows []entity.ScanRow, page, pageSize int) []entity.ScanRow
	ComputeView(rows []entity.ScanRow, params entity.ScannerParams, req dto.ViewRequest) dto.ViewResult
}

// NewScreenerService creates a new screener service.
func NewScreenerService(log *logger.Logger) ScreenerService {
	return &screenerService{logger: log}
}

type screenerService struct {
	logger *logger.Logger
}

// keep evaluates the conjunctive filter chain in its fixed order. Any failing
// predicate rejects the row. The wick check applies to BTST only.
func keep(row entity.ScanRow, p entity.ScannerParams, mode entity.Mode, query string) bool {
	if query != "" && !strings.Contains(strings.ToLower(row.Name), query) {
		return false
	}
	if row.ValueB < p.MinValueB {
		return false
	}
	if row.Close < p.MinPrice {
		return false
	}
	if row.Change < p.MinChange || row.Change > p.MaxChange {
		return false
	}
	if row.Volume < row.AvgVol10*p.VolMultiplier {
		return false
	}
	if row.VwapDistPct < p.MinVwapDist {
		return false
	}
	if mode == entity.ModeBTST && row.WickPct > p.MaxWick {
		return false
	}
	if p.RangeEnabled && row.RangePct > p.MaxRangePct {
		return false
	}
	return true
}

// FilterAndRank filters rows against the effective params and orders the
// survivors by the sort key. The sort is stable: ties keep their relative
// order from the input.
func (s *screenerService) FilterAndRank(rows []entity.ScanRow, effective entity.ScannerParams, mode entity.Mode, search string, sortKey entity.SortKey, sortOrder entity.SortOrder) []entity.ScanRow {
	query := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]entity.ScanRow, 0, len(rows))
	for _, row := range rows {
		if keep(row, effective, mode, query) {
			filtered = append(filtered, row)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		delta := filtered[i].SortValue(sortKey) - filtered[j].SortValue(sortKey)
		if sortOrder == entity.SortOrderAsc {
			return delta < 0
		}
		return delta > 0
	})

	return filtered
}

// Paginate slices out a 1-indexed page. Out-of-range pages return an empty
// slice; callers reset or clamp the page when upstream inputs change.
func (s *screenerService) Paginate(rows []entity.ScanRow, page, pageSize int) []entity.ScanRow {
	if page < 1 || pageSize < 1 {
		return []entity.ScanRow{}
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []entity.ScanRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ComputeView recomputes the visible page from scratch: effective params,
// filter, rank, clamp, slice. The requested page is clamped into the valid
// range so a stale page number never renders an empty slice while rows exist.
func (s *screenerService) ComputeView(rows []entity.ScanRow, params entity.ScannerParams, req dto.ViewRequest) dto.ViewResult {
	effective := params.Effective(req.Mode)
	filtered := s.FilterAndRank(rows, effective, req.Mode, req.Search, req.SortKey, req.SortOrder)

	pageSize := req.PageSize
	if pageSize != DefaultPageSize && pageSize != LargePageSize {
		pageSize = DefaultPageSize
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.ViewResult{
		Ok:              true,
		Rows:            s.Paginate(filtered, page, pageSize),
		TotalRows:       len(filtered),
		Page:            page,
		TotalPages:      totalPages,
		PageSize:        pageSize,
		Mode:            req.Mode,
		EffectiveParams: effective,
	}
}
