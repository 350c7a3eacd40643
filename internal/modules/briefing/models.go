package briefing

// Brief is the "Today in Gold" daily summary: where the price stands, what
// happened, why it may matter, and what is coming up.
type Brief struct {
	Title         string            `json:"title"`
	Date          string            `json:"date"`
	PriceSnapshot PriceSnapshot     `json:"price_snapshot"`
	WhatHappened  []EventHighlight  `json:"what_happened"`
	WhyMatters    []FactorHighlight `json:"why_matters"`
	WatchNext     []CalendarEntry   `json:"watch_next"`
}

// PriceSnapshot is the latest market state
type PriceSnapshot struct {
	Date          string   `json:"date"`
	GoldPrice     float64  `json:"gold_price"`
	ChangePct     *float64 `json:"change_pct,omitempty"`
	DXY           *float64 `json:"dxy,omitempty"`
	TreasuryYield *float64 `json:"treasury_yield,omitempty"`
	VIX           *float64 `json:"vix,omitempty"`
	RSI14         *float64 `json:"rsi_14,omitempty"`
}

// EventHighlight is one high-impact recent event
type EventHighlight struct {
	Headline    string   `json:"headline"`
	EventType   string   `json:"event_type"`
	ImpactScore float64  `json:"impact_score"`
	Factors     []string `json:"factors"`
}

// FactorHighlight explains one leading factor
type FactorHighlight struct {
	FactorCode     string  `json:"factor_code"`
	FactorName     string  `json:"factor_name"`
	InfluenceScore float64 `json:"influence_score"`
	EventCount     int     `json:"event_count"`
	SampleEvent    string  `json:"sample_event,omitempty"`
}

// CalendarEntry is an upcoming scheduled release or meeting
type CalendarEntry struct {
	EventType string `json:"event_type"`
	Name      string `json:"name"`
	Schedule  string `json:"schedule"`
	Impact    string `json:"impact"`
}

// watchCalendar is the static list of recurring high-impact releases shown
// under "what to watch next". A real calendar feed can replace it later.
var watchCalendar = []CalendarEntry{
	{EventType: "MACRO_DATA_RELEASE", Name: "US CPI", Schedule: "Monthly, ~13th", Impact: "High"},
	{EventType: "MACRO_DATA_RELEASE", Name: "US PCE", Schedule: "Monthly, end of month", Impact: "High"},
	{EventType: "CENTRAL_BANK_DECISION", Name: "FOMC Meeting", Schedule: "~8 times per year", Impact: "Very High"},
	{EventType: "MACRO_DATA_RELEASE", Name: "US Jobs Report", Schedule: "First Friday of month", Impact: "High"},
}
