package dto

import (
	"golang-idx-screener/internal/entity"
)

// TradingViewFilter is one predicate in the scanner request body.
type TradingViewFilter struct {
	Left      string      `json:"left"`
	Operation string      `json:"operation"`
	Right     interface{} `json:"right"`
}

// TradingViewSort selects the upstream ordering.
type TradingViewSort struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// TradingViewScanRequest is the scanner request body.
type TradingViewScanRequest struct {
	Filter  []TradingViewFilter `json:"filter"`
	Columns []string            `json:"columns"`
	Sort    TradingViewSort     `json:"sort"`
	Range   [2]int              `json:"range"`
}

// NewIDXScanRequest builds the fixed request for IDX stocks: close above 50,
// non-zero volume, up to 2000 rows sorted by volume descending.
func NewIDXScanRequest() TradingViewScanRequest {
	return TradingViewScanRequest{
		Filter: []TradingViewFilter{
			{Left: "type", Operation: "equal", Right: "stock"},
			{Left: "exchange", Operation: "equal", Right: "IDX"},
			{Left: "close", Operation: "greater", Right: 50},
			{Left: "volume", Operation: "greater", Right: 0},
		},
		Columns: []string{
			"name",
			"close",
			"open",
			"high",
			"low",
			"volume",
			"change",
			"average_volume_10d_calc",
			"VWAP",
		},
		Sort:  TradingViewSort{SortBy: "volume", SortOrder: "desc"},
		Range: [2]int{0, 2000},
	}
}

// TradingViewScanItem is one ticker entry in the scanner response.
type TradingViewScanItem struct {
	Ticker string                 `json:"s"`
	Values entity.RawTickerRecord `json:"d"`
}

// TradingViewScanResponse is the scanner response envelope. Data is a pointer
// so a body without a data array is distinguishable from an empty result.
type TradingViewScanResponse struct {
	TotalCount int                    `json:"totalCount"`
	Data       *[]TradingViewScanItem `json:"data"`
}
