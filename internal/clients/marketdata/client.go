package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const chartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Client fetches daily market series from the quote-chart API
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new market data client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: chartBaseURL,
		log:     log.With().Str("client", "marketdata").Logger(),
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint (tests)
func NewClientWithBaseURL(baseURL string, log zerolog.Logger) *Client {
	c := NewClient(log)
	c.baseURL = baseURL
	return c
}

// FetchDailyCloses fetches up to days daily closes for one instrument,
// oldest first. Days without a close (half sessions, gaps in the feed) are
// skipped.
func (c *Client) FetchDailyCloses(symbol string, days int) ([]Candle, error) {
	endpoint := c.baseURL + url.PathEscape(symbol)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	q := req.URL.Query()
	q.Set("range", fmt.Sprintf("%dd", days))
	q.Set("interval", "1d")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "goldlens/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chart API returned %d for %s: %s", resp.StatusCode, symbol, string(body))
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	result := parsed.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		candles = append(candles, Candle{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Close: *closes[i],
		})
	}

	c.log.Debug().Str("symbol", symbol).Int("candles", len(candles)).Msg("Fetched daily closes")
	return candles, nil
}

// FetchAll fetches the gold series plus its context series. A failed context
// fetch is logged and left empty; a failed gold fetch is an error, since
// everything downstream aligns to it.
func (c *Client) FetchAll(days int) (MarketData, error) {
	var data MarketData

	gold, err := c.FetchDailyCloses(SymbolGold, days)
	if err != nil {
		return data, fmt.Errorf("failed to fetch gold series: %w", err)
	}
	data.Gold = gold

	for _, entry := range []struct {
		symbol string
		target *[]Candle
	}{
		{SymbolDollarIndex, &data.DollarIndex},
		{SymbolTreasuryYield, &data.TreasuryYield},
		{SymbolVIX, &data.VIX},
	} {
		series, err := c.FetchDailyCloses(entry.symbol, days)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", entry.symbol).Msg("Context series unavailable")
			continue
		}
		*entry.target = series
	}

	return data, nil
}
