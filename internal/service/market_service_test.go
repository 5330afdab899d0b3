package service

import (
	"context"
	"testing"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveServedFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	source := newFakeSource(map[string]float64{"NABIL": 500})
	market := newTestMarket(t, db, source)

	first, err := market.Live(ctx)
	require.NoError(t, err)
	require.Len(t, first.Ticks, 1)
	assert.False(t, first.Stale)

	_, err = market.Live(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.liveCallCount())
}

func TestLiveFallsBackToMemoryWhenUpstreamFails(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	source := newFakeSource(map[string]float64{"NABIL": 500})

	conf := testConfig()
	conf.Nepse.CacheTTLSeconds = 1
	market := NewMarketService(db, source, conf, zap.NewNop())

	_, err := market.Live(ctx)
	require.NoError(t, err)

	// Let the cache expire, then kill the upstream. The expired payload is
	// still served, marked stale.
	time.Sleep(1100 * time.Millisecond)
	source.setFailing(true)

	tick, stale, err := market.Quote(ctx, "NABIL")
	require.NoError(t, err)
	assert.True(t, stale)
	assert.True(t, tick.LastTradedPrice.Equal(dec("500")))
}

func TestLiveFallsBackToSnapshotAcrossRestart(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	source := newFakeSource(map[string]float64{"NABIL": 500})

	// First instance fetches successfully and persists the backup.
	warm := newTestMarket(t, db, source)
	_, err := warm.Live(ctx)
	require.NoError(t, err)

	// Second instance simulates a restart: cold memory, dead upstream.
	source.setFailing(true)
	cold := newTestMarket(t, db, source)

	live, err := cold.Live(ctx)
	require.NoError(t, err)
	assert.True(t, live.Stale)
	require.Len(t, live.Ticks, 1)
	assert.True(t, live.Ticks[0].LastTradedPrice.Equal(dec("500")))
}

func TestLiveUnavailableWhenNothingToServe(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	source := newFakeSource(nil)
	source.setFailing(true)
	market := newTestMarket(t, db, source)

	_, err := market.Live(ctx)
	assert.ErrorIs(t, err, xe.ErrMarketDataUnavailable)
}

func TestQuoteDistinguishesMissingSymbol(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	market := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 500}))

	_, _, err := market.Quote(ctx, "NOPE")
	assert.ErrorIs(t, err, xe.ErrSymbolNotFound)

	tick, _, err := market.Quote(ctx, "nabil")
	require.NoError(t, err)
	assert.Equal(t, "NABIL", tick.Symbol)
}

func TestRefreshSyncsStocksTable(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	source := newFakeSource(map[string]float64{"NABIL": 500, "NICA": 300})
	market := newTestMarket(t, db, source)

	require.NoError(t, market.Refresh(ctx))

	detail, err := market.StockDetail(ctx, "NABIL")
	require.NoError(t, err)
	assert.Equal(t, "NABIL Ltd", detail.CompanyName)
}
