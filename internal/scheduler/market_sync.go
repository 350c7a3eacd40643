package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/clients/marketdata"
	"github.com/aurumlens/goldlens/internal/modules/prices"
)

// MarketSyncJob fetches the tracked market series, stores the raw closes per
// instrument, and refreshes the aligned snapshot table.
type MarketSyncJob struct {
	client    *marketdata.Client
	history   *prices.HistoryDB
	snapshots *prices.Repository
	days      int
	log       zerolog.Logger
}

// NewMarketSyncJob creates a market sync job covering the trailing days.
func NewMarketSyncJob(client *marketdata.Client, history *prices.HistoryDB, snapshots *prices.Repository, days int, log zerolog.Logger) *MarketSyncJob {
	return &MarketSyncJob{
		client:    client,
		history:   history,
		snapshots: snapshots,
		days:      days,
		log:       log.With().Str("job", "market_sync").Logger(),
	}
}

// Name returns the job name
func (j *MarketSyncJob) Name() string {
	return "market_sync"
}

// Run executes the sync
func (j *MarketSyncJob) Run() error {
	data, err := j.client.FetchAll(j.days)
	if err != nil {
		return fmt.Errorf("market fetch failed: %w", err)
	}

	for _, entry := range []struct {
		symbol  string
		candles []marketdata.Candle
	}{
		{marketdata.SymbolGold, data.Gold},
		{marketdata.SymbolDollarIndex, data.DollarIndex},
		{marketdata.SymbolTreasuryYield, data.TreasuryYield},
		{marketdata.SymbolVIX, data.VIX},
	} {
		closes := make([]prices.DailyClose, len(entry.candles))
		for i, c := range entry.candles {
			closes[i] = prices.DailyClose{Date: c.Date, Close: c.Close}
		}
		if err := j.history.SaveDailyCloses(entry.symbol, closes); err != nil {
			j.log.Warn().Err(err).Str("instrument", entry.symbol).Msg("History write failed")
		}
	}

	snapshots := marketdata.AlignSeries(data)
	if err := j.snapshots.UpsertSnapshots(snapshots); err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}

	j.log.Info().Int("days", len(snapshots)).Msg("Market sync complete")
	return nil
}
