package marketdata

// Instrument symbols for the tracked series, in the quote API's notation.
const (
	SymbolGold          = "GC=F"     // COMEX gold futures
	SymbolDollarIndex   = "DX-Y.NYB" // US dollar index
	SymbolTreasuryYield = "^TNX"     // 10-year treasury yield
	SymbolVIX           = "^VIX"
)

// Candle is one daily close of one instrument
type Candle struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// MarketData bundles the fetched series for one sync. Context series may be
// empty when their fetch failed; only the gold series is required.
type MarketData struct {
	Gold          []Candle `json:"gold"`
	DollarIndex   []Candle `json:"dxy"`
	TreasuryYield []Candle `json:"treasury_yield"`
	VIX           []Candle `json:"vix"`
}

// chartResponse mirrors the quote-chart API envelope
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
