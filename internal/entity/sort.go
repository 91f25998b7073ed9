package entity

import "fmt"

// SortKey names a sortable derived metric.
type SortKey string

const (
	SortKeyValueB      SortKey = "valueB"
	SortKeyChange      SortKey = "change"
	SortKeyVwapDistPct SortKey = "vwapDistPct"
	SortKeyWickPct     SortKey = "wickPct"
)

// SortOrder is the ranking direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortKeyValueB, SortKeyChange, SortKeyVwapDistPct, SortKeyWickPct:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseSortOrder validates a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortOrderAsc, SortOrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// SortValue returns the row's value for a sort key.
func (r ScanRow) SortValue(key SortKey) float64 {
	switch key {
	case SortKeyChange:
		return r.Change
	case SortKeyVwapDistPct:
		return r.VwapDistPct
	case SortKeyWickPct:
		return r.WickPct
	default:
		return r.ValueB
	}
}
