package nepse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBrokerageLowestTier(t *testing.T) {
	// 10,000 * 0.36%
	assert.True(t, dec("36.00").Equal(Brokerage(dec("10000"))))
}

func TestBrokerageTierBoundary(t *testing.T) {
	// Exactly 50,000 sits entirely in the first tier.
	assert.True(t, dec("180.00").Equal(Brokerage(dec("50000"))))

	// 100,000 spans two tiers: 50k*0.36% + 50k*0.33%.
	assert.True(t, dec("345.00").Equal(Brokerage(dec("100000"))))
}

func TestBrokerageAllTiers(t *testing.T) {
	// 12,000,000 crosses every tier:
	// 50k*0.36% + 450k*0.33% + 1.5M*0.31% + 8M*0.27% + 2M*0.24%
	// = 180 + 1485 + 4650 + 21600 + 4800 = 32715
	assert.True(t, dec("32715.00").Equal(Brokerage(dec("12000000"))))
}

func TestBrokerageZero(t *testing.T) {
	assert.True(t, Brokerage(decimal.Zero).IsZero())
}

func TestBrokerageMonotonic(t *testing.T) {
	// No cliff: a larger trade never pays less total brokerage. Walk across
	// every tier boundary in odd steps so boundaries land mid-step too.
	prev := decimal.Zero
	for v := int64(0); v <= 11_000_000; v += 24_999 {
		fee := Brokerage(decimal.NewFromInt(v))
		require.False(t, fee.LessThan(prev), "brokerage decreased at notional %d", v)
		prev = fee
	}
}

func TestComputeFeesComposition(t *testing.T) {
	fees := ComputeFees(dec("100000"))

	assert.True(t, dec("345.00").Equal(fees.Brokerage))
	assert.True(t, dec("15.00").Equal(fees.SebonFee))
	assert.True(t, dec("25.00").Equal(fees.DPCharge))
	assert.True(t, fees.TotalFees.Equal(fees.Brokerage.Add(fees.SebonFee).Add(fees.DPCharge)))
}

func TestComputeFeesSebonRate(t *testing.T) {
	// 0.015% of 1,000,000
	fees := ComputeFees(dec("1000000"))
	assert.True(t, dec("150.00").Equal(fees.SebonFee))
}

func TestComputeFeesZeroNotional(t *testing.T) {
	fees := ComputeFees(decimal.Zero)

	assert.True(t, fees.Brokerage.IsZero())
	assert.True(t, fees.SebonFee.IsZero())
	assert.True(t, dec("25.00").Equal(fees.DPCharge))
	assert.True(t, dec("25.00").Equal(fees.TotalFees))
}

func TestBrokerageRoundsOnceAtEnd(t *testing.T) {
	// 50,001: 180 + 1*0.33% = 180.0033, rounded half-up to 180.00. Rounding
	// each slice separately would give the same here, so also check a value
	// whose per-slice rounding differs: 50,500 -> 180 + 500*0.33% = 181.65.
	assert.True(t, dec("180.00").Equal(Brokerage(dec("50001"))))
	assert.True(t, dec("181.65").Equal(Brokerage(dec("50500"))))
}
