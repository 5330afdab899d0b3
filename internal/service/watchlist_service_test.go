package service

import (
	"context"
	"testing"

	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWatchlist(t *testing.T) (*WatchlistService, string) {
	t.Helper()
	db := newTestDB(t)
	market := newTestMarket(t, db, newFakeSource(map[string]float64{"NABIL": 500}))
	userID := seedAccount(t, db, 100000)
	return NewWatchlistService(db, market, zap.NewNop()), userID
}

func TestWatchlistAddListRemove(t *testing.T) {
	ctx := context.Background()
	watchlist, userID := newTestWatchlist(t)

	target := decimal.NewFromInt(600)
	require.NoError(t, watchlist.Add(ctx, userID, "nabil", &target, nil))

	items, err := watchlist.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "NABIL", items[0].Symbol)
	require.NotNil(t, items[0].TargetPrice)
	assert.True(t, items[0].TargetPrice.Equal(target))
	require.NotNil(t, items[0].LastTradedPrice)
	assert.True(t, items[0].LastTradedPrice.Equal(dec("500")))

	require.NoError(t, watchlist.Remove(ctx, userID, "NABIL"))

	items, err = watchlist.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWatchlistAddUnknownSymbol(t *testing.T) {
	ctx := context.Background()
	watchlist, userID := newTestWatchlist(t)

	err := watchlist.Add(ctx, userID, "NOPE", nil, nil)
	assert.ErrorIs(t, err, xe.ErrSymbolNotFound)
}

func TestWatchlistAddTwiceUpdatesAlerts(t *testing.T) {
	ctx := context.Background()
	watchlist, userID := newTestWatchlist(t)

	require.NoError(t, watchlist.Add(ctx, userID, "NABIL", nil, nil))

	stop := decimal.NewFromInt(450)
	require.NoError(t, watchlist.Add(ctx, userID, "NABIL", nil, &stop))

	items, err := watchlist.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].StopLoss)
	assert.True(t, items[0].StopLoss.Equal(stop))
}

func TestWatchlistUpdateAlerts(t *testing.T) {
	ctx := context.Background()
	watchlist, userID := newTestWatchlist(t)

	err := watchlist.UpdateAlerts(ctx, userID, "NABIL", nil, nil)
	assert.ErrorIs(t, err, xe.ErrWatchlistItemNotFound)

	require.NoError(t, watchlist.Add(ctx, userID, "NABIL", nil, nil))

	target := decimal.NewFromInt(550)
	require.NoError(t, watchlist.UpdateAlerts(ctx, userID, "nabil", &target, nil))

	items, err := watchlist.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].TargetPrice)
	assert.True(t, items[0].TargetPrice.Equal(target))
}

func TestWatchlistRemoveMissing(t *testing.T) {
	ctx := context.Background()
	watchlist, userID := newTestWatchlist(t)

	err := watchlist.Remove(ctx, userID, "NABIL")
	assert.ErrorIs(t, err, xe.ErrWatchlistItemNotFound)
}
