package entity

import "fmt"

// Mode selects one of the two short-horizon screening strategies.
type Mode string

const (
	// ModeBTST is "Buy Today Sell Tomorrow", with a wick-quality constraint.
	ModeBTST Mode = "BTST"
	// ModeBPJS is the alternate strategy without the wick constraint.
	ModeBPJS Mode = "BPJS"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBTST, ModeBPJS:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// ScannerParams is the per-mode filter configuration. Field ranges are not
// validated (minChange > maxChange is allowed and simply matches nothing).
type ScannerParams struct {
	MinValueB     float64 `json:"minValueB"`
	MinPrice      float64 `json:"minPrice"`
	MinChange     float64 `json:"minChange"`
	MaxChange     float64 `json:"maxChange"`
	VolMultiplier float64 `json:"volMultiplier"`
	MinVwapDist   float64 `json:"minVwapDist"`
	MaxWick       float64 `json:"maxWick"`
	RangeEnabled  bool    `json:"rangeEnabled"`
	MaxRangePct   float64 `json:"maxRangePct"`
	WeekendMode   bool    `json:"weekendMode"`
}

// Weekend overlay floors/ceilings for BTST. The overlay only ever tightens the
// stored values.
const (
	weekendMinValueB     = 3
	weekendMaxChange     = 8
	weekendMinVwapDist   = 1.0
	weekendMaxWick       = 0.7
	weekendVolMultiplier = 1.6
)

// DefaultParams returns the hardcoded baseline for a mode. BTST is stricter on
// value and change, looser on VWAP distance.
func DefaultParams(mode Mode) ScannerParams {
	switch mode {
	case ModeBPJS:
		return ScannerParams{
			MinValueB:     1,
			MinPrice:      200,
			MinChange:     1,
			MaxChange:     12,
			VolMultiplier: 1.1,
			MinVwapDist:   0,
			MaxWick:       1.0,
			RangeEnabled:  false,
			MaxRangePct:   12,
			WeekendMode:   false,
		}
	default:
		return ScannerParams{
			MinValueB:     2,
			MinPrice:      200,
			MinChange:     2,
			MaxChange:     10,
			VolMultiplier: 1.5,
			MinVwapDist:   0.5,
			MaxWick:       1.0,
			RangeEnabled:  false,
			MaxRangePct:   12,
			WeekendMode:   false,
		}
	}
}

// Effective applies the weekend overlay for BTST when weekend mode is on,
// taking the more conservative of the stored value and the fixed bound. Every
// other mode/flag combination passes the params through unchanged.
func (p ScannerParams) Effective(mode Mode) ScannerParams {
	if mode != ModeBTST || !p.WeekendMode {
		return p
	}

	eff := p
	eff.MinValueB = max(p.MinValueB, weekendMinValueB)
	eff.MaxChange = min(p.MaxChange, weekendMaxChange)
	eff.MinVwapDist = max(p.MinVwapDist, weekendMinVwapDist)
	eff.MaxWick = min(p.MaxWick, weekendMaxWick)
	eff.VolMultiplier = max(p.VolMultiplier, weekendVolMultiplier)
	return eff
}
