package dto

import (
	"time"

	"golang-idx-screener/internal/entity"
)

// ScanResult is a completed scan: the full derived row set and when it was
// fetched. A new scan fully replaces the prior result.
type ScanResult struct {
	Rows      []entity.ScanRow `json:"rows"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// ScanResponse is the API body for a successful scan.
type ScanResponse struct {
	Ok        bool             `json:"ok"`
	Rows      []entity.ScanRow `json:"rows"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// ViewRequest carries every input of the screening pipeline. One deterministic
// ComputeView call recomputes the visible page from scratch.
type ViewRequest struct {
	Mode      entity.Mode
	Search    string
	SortKey   entity.SortKey
	SortOrder entity.SortOrder
	Page      int
	PageSize  int
}

// ViewResult is the computed page plus the totals the caller needs to render
// pagination and the effective (weekend-adjusted) parameter set. FetchedAt is
// nil until a scan has succeeded.
type ViewResult struct {
	Ok              bool                 `json:"ok"`
	Rows            []entity.ScanRow     `json:"rows"`
	TotalRows       int                  `json:"total_rows"`
	Page            int                  `json:"page"`
	TotalPages      int                  `json:"total_pages"`
	PageSize        int                  `json:"page_size"`
	Mode            entity.Mode          `json:"mode"`
	EffectiveParams entity.ScannerParams `json:"effective_params"`
	FetchedAt       *time.Time           `json:"fetched_at,omitempty"`
}

// ScannerParamsPatch is a merge patch for one mode's params: only supplied
// fields replace stored values. Values are not range-validated.
type ScannerParamsPatch struct {
	MinValueB     *float64 `json:"minValueB,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MinChange     *float64 `json:"minChange,omitempty"`
	MaxChange     *float64 `json:"maxChange,omitempty"`
	VolMultiplier *float64 `json:"volMultiplier,omitempty"`
	MinVwapDist   *float64 `json:"minVwapDist,omitempty"`
	MaxWick       *float64 `json:"maxWick,omitempty"`
	RangeEnabled  *bool    `json:"rangeEnabled,omitempty"`
	MaxRangePct   *float64 `json:"maxRangePct,omitempty"`
	WeekendMode   *bool    `json:"weekendMode,omitempty"`
}

// Apply merges the patch over base and returns the result.
func (p ScannerParamsPatch) Apply(base entity.ScannerParams) entity.ScannerParams {
	if p.MinValueB != nil {
		base.MinValueB = *p.MinValueB
	}
	if p.MinPrice != nil {
		base.MinPrice = *p.MinPrice
	}
	if p.MinChange != nil {
		base.MinChange = *p.MinChange
	}
	if p.MaxChange != nil {
		base.MaxChange = *p.MaxChange
	}
	if p.VolMultiplier != nil {
		base.VolMultiplier = *p.VolMultiplier
	}
	if p.MinVwapDist != nil {
		base.MinVwapDist = *p.MinVwapDist
	}
	if p.MaxWick != nil {
		base.MaxWick = *p.MaxWick
	}
	if p.RangeEnabled != nil {
		base.RangeEnabled = *p.RangeEnabled
	}
	if p.MaxRangePct != nil {
		base.MaxRangePct = *p.MaxRangePct
	}
	if p.WeekendMode != nil {
		base.WeekendMode = *p.WeekendMode
	}
	return base
}

// WatchlistResponse is the API body for watchlist reads and mutations.
type WatchlistResponse struct {
	Tickers []string `json:"tickers"`
}

// PinRequest is the API body for pinning a ticker.
type PinRequest struct {
	Ticker string `json:"ticker"`
}
