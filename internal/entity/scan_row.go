package entity

import "errors"

// RawTickerRecord is one positional "d" array from the scanner response:
// [name, close, open, high, low, volume, change, avgVol10, vwap, ...].
type RawTickerRecord []interface{}

// ErrMalformedRecord indicates a raw record with fewer fields than the scanner
// contract requires.
var ErrMalformedRecord = errors.New("malformed ticker record")

// minRecordFields is the number of leading positional fields a record must carry.
const minRecordFields = 9

// ScanRow is the derived, immutable per-ticker row the screening pipeline
// operates on. All derived fields are pure functions of the raw inputs.
type ScanRow struct {
	Name     string  `json:"name"`
	Close    float64 `json:"close"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Volume   float64 `json:"volume"`
	Change   float64 `json:"change"`
	AvgVol10 float64 `json:"avgVol10"`
	Vwap     float64 `json:"vwap"`

	ValueIDR    float64 `json:"valueIDR"`
	ValueB      float64 `json:"valueB"`
	WickPct     float64 `json:"wickPct"`
	VwapDistPct float64 `json:"vwapDistPct"`
	RangePct    float64 `json:"rangePct"`
}

// NewScanRow derives a ScanRow from a raw scanner record. Records shorter than
// nine fields are rejected with ErrMalformedRecord. Missing or non-numeric
// values coerce to zero, and every ratio guards its denominator so the derived
// metrics are never NaN or Inf.
func NewScanRow(d RawTickerRecord) (ScanRow, error) {
	if len(d) < minRecordFields {
		return ScanRow{}, ErrMalformedRecord
	}

	row := ScanRow{
		Name:     toString(d[0]),
		Close:    toNumber(d[1]),
		Open:     toNumber(d[2]),
		High:     toNumber(d[3]),
		Low:      toNumber(d[4]),
		Volume:   toNumber(d[5]),
		Change:   toNumber(d[6]),
		AvgVol10: toNumber(d[7]),
		Vwap:     toNumber(d[8]),
	}

	row.ValueIDR = row.Close * row.Volume
	row.ValueB = row.ValueIDR / 1e9
	if row.Close > 0 {
		row.WickPct = (row.High - row.Close) / row.Close * 100
	}
	if row.Vwap > 0 {
		row.VwapDistPct = (row.Close - row.Vwap) / row.Vwap * 100
	}
	if row.Low > 0 {
		row.RangePct = (row.High - row.Low) / row.Low * 100
	}

	return row, nil
}

func toString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
