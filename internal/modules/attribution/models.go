package attribution

import "time"

// DateLayout is the canonical day key used across the pipeline.
const DateLayout = "2006-01-02"

// FactorDayRecord is the accumulated contribution of one factor on one
// calendar day. Score carries direction, Intensity is the direction-agnostic
// magnitude used for rolling and normalization math, EventCount is how many
// events contributed.
type FactorDayRecord struct {
	Date       time.Time `json:"date"`
	FactorCode string    `json:"factor_code"`
	Score      float64   `json:"score"`
	Intensity  float64   `json:"intensity"`
	EventCount int       `json:"event_count"`
}

// AlignedRecord is a dense factor-day row joined against the tracked price
// series. Price is nil for leading days before any trading value exists;
// PriceChangePct is nil whenever the previous day in the same factor group
// has no price.
type AlignedRecord struct {
	FactorDayRecord
	Price          *float64 `json:"price,omitempty"`
	PriceChangePct *float64 `json:"price_change_pct,omitempty"`
}

// InfluenceRecord is one point of the influence curve: the trailing-window
// intensity of a factor and its share of all factors' trailing intensity on
// the same day.
type InfluenceRecord struct {
	Date                time.Time `json:"date"`
	FactorCode          string    `json:"factor_code"`
	RollingIntensity    float64   `json:"rolling_intensity"`
	NormalizedInfluence float64   `json:"normalized_influence"`
	Score               float64   `json:"score"`
	Price               *float64  `json:"price,omitempty"`
}

// FactorRank is one entry of the top-factor ranking.
type FactorRank struct {
	FactorCode   string  `json:"factor_code"`
	AvgInfluence float64 `json:"avg_influence"`
}

// Day returns the record's date formatted as a day key.
func (r FactorDayRecord) Day() string {
	return r.Date.Format(DateLayout)
}

// Day returns the record's date formatted as a day key.
func (r InfluenceRecord) Day() string {
	return r.Date.Format(DateLayout)
}
