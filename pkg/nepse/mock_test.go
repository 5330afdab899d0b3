package nepse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceDeterministic(t *testing.T) {
	ctx := context.Background()

	a, err := NewMockSource(42).LiveMarket(ctx)
	require.NoError(t, err)
	b, err := NewMockSource(42).LiveMarket(ctx)
	require.NoError(t, err)

	require.Len(t, b.Ticks, len(a.Ticks))
	for i := range a.Ticks {
		assert.Equal(t, a.Ticks[i].Symbol, b.Ticks[i].Symbol)
		assert.True(t, a.Ticks[i].LastTradedPrice.Equal(b.Ticks[i].LastTradedPrice))
	}
}

func TestMockSourcePricesAreSane(t *testing.T) {
	ctx := context.Background()
	source := NewMockSource(1)

	market, err := source.LiveMarket(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, market.Ticks)

	for _, tick := range market.Ticks {
		assert.True(t, tick.LastTradedPrice.IsPositive(), tick.Symbol)
		assert.Positive(t, tick.Volume)
	}
}

func TestMockSourcePriceHistory(t *testing.T) {
	ctx := context.Background()
	source := NewMockSource(1)

	points, err := source.PriceHistory(ctx, "nabil")
	require.NoError(t, err)
	assert.Len(t, points, 30)
}
