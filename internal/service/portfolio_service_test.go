package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPortfolioSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	market := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 100, "NICA": 200}))
	trading := NewTradingService(db, market, testConfig(), zap.NewNop())
	portfolio := NewPortfolioService(db, market, zap.NewNop())
	userID := seedAccount(t, db, 100000)

	_, err := trading.ExecuteBuy(ctx, userID, "NABIL", 10)
	require.NoError(t, err)
	_, err = trading.ExecuteBuy(ctx, userID, "NICA", 10)
	require.NoError(t, err)

	summary, err := portfolio.Summary(ctx, userID)
	require.NoError(t, err)

	require.Len(t, summary.Holdings, 2)
	assert.Equal(t, int64(2), summary.TradeCount)

	// 1000 + 2000 of stock at the unchanged prices.
	assert.True(t, summary.HoldingsValue.Equal(dec("3000")), summary.HoldingsValue.String())
	assert.True(t, summary.UnrealizedPnL.IsZero(), summary.UnrealizedPnL.String())
	assert.True(t, summary.TotalValue.Equal(summary.CashBalance.Add(dec("3000"))))
}

func TestPortfolioUnrealizedPnL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedAccount(t, db, 100000)

	buyMarket := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 100}))
	trading := NewTradingService(db, buyMarket, testConfig(), zap.NewNop())
	_, err := trading.ExecuteBuy(ctx, userID, "NABIL", 10)
	require.NoError(t, err)

	// Price moved to 150 after the buy.
	liveMarket := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 150}))
	portfolio := NewPortfolioService(db, liveMarket, zap.NewNop())

	holdings, err := portfolio.Holdings(ctx, userID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	holding := holdings[0]
	assert.True(t, holding.CurrentValue.Equal(dec("1500")), holding.CurrentValue.String())
	assert.True(t, holding.UnrealizedPnL.Equal(dec("500")), holding.UnrealizedPnL.String())
	assert.True(t, holding.PnLPercent.Equal(dec("50")), holding.PnLPercent.String())
}

func TestPortfolioValuesMissingSymbolAtCost(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedAccount(t, db, 100000)

	buyMarket := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 100}))
	trading := NewTradingService(db, buyMarket, testConfig(), zap.NewNop())
	_, err := trading.ExecuteBuy(ctx, userID, "NABIL", 10)
	require.NoError(t, err)

	// The symbol later vanishes from the feed.
	goneMarket := newTestMarket(t, db, newFakeSource(map[string]float64{"NICA": 200}))
	portfolio := NewPortfolioService(db, goneMarket, zap.NewNop())

	holdings, err := portfolio.Holdings(ctx, userID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	holding := holdings[0]
	assert.True(t, holding.PriceStale)
	assert.True(t, holding.CurrentPrice.Equal(dec("100")))
	assert.True(t, holding.UnrealizedPnL.IsZero())
}

func TestPortfolioSoldOutPositionExcluded(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	market := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 100}))
	trading := NewTradingService(db, market, testConfig(), zap.NewNop())
	portfolio := NewPortfolioService(db, market, zap.NewNop())
	userID := seedAccount(t, db, 100000)

	_, err := trading.ExecuteBuy(ctx, userID, "NABIL", 10)
	require.NoError(t, err)
	_, err = trading.ExecuteSell(ctx, userID, "NABIL", 10)
	require.NoError(t, err)

	holdings, err := portfolio.Holdings(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, holdings)
}
