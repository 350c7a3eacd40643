package domain

import "time"

// Polarity is the directional sign of a factor's effect on the gold price
// for a given event: bullish, bearish, or unclear.
type Polarity string

const (
	PolarityBullish Polarity = "+"
	PolarityBearish Polarity = "-"
	PolarityNeutral Polarity = "0"
)

// FactorTag maps an event to one factor of the taxonomy.
// Strength and Confidence are produced in [0,1] by the classifier; values
// outside that range are used as given rather than re-clamped here.
type FactorTag struct {
	Factor     string   `json:"factor" validate:"required"`
	Polarity   Polarity `json:"polarity"`
	Strength   float64  `json:"strength"`
	Confidence float64  `json:"confidence"`
}

// EventSource identifies where an event's underlying article came from.
type EventSource struct {
	Publisher       string `json:"publisher,omitempty"`
	URL             string `json:"url,omitempty"`
	CredibilityTier int    `json:"credibility_tier,omitempty"`
}

// Event is a news item already classified against the factor taxonomy by an
// external extractor. TimestampUTC is kept as the raw string the classifier
// produced; only its calendar date matters downstream, and events whose
// timestamp cannot be parsed are dropped at aggregation time.
type Event struct {
	ID           string      `json:"event_id,omitempty"`
	EventType    string      `json:"event_type" validate:"required"`
	Headline     string      `json:"headline"`
	Summary      string      `json:"summary,omitempty"`
	Actors       []string    `json:"actors,omitempty"`
	Stance       string      `json:"stance,omitempty"`
	Sentiment    string      `json:"sentiment,omitempty"`
	TimestampUTC string      `json:"timestamp_utc" validate:"required"`
	FactorTags   []FactorTag `json:"factor_tags" validate:"dive"`
	Source       EventSource `json:"source"`
	CreatedAt    time.Time   `json:"created_at,omitempty"`
}

// Article is a raw, unclassified news item fetched from a feed or news API.
// Articles are stored for the external classifier; this service never
// classifies text itself.
type Article struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"published,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// MarketSnapshot is one day of aligned market data: the tracked gold price
// plus the context series fetched alongside it. Context fields are nil when
// the upstream source had no value for that day even after forward filling.
type MarketSnapshot struct {
	Date          string   `json:"date"` // YYYY-MM-DD
	GoldPrice     float64  `json:"gold_price"`
	DXY           *float64 `json:"dxy,omitempty"`
	TreasuryYield *float64 `json:"treasury_yield,omitempty"`
	VIX           *float64 `json:"vix,omitempty"`
}
