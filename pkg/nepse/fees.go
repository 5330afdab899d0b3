package nepse

import "github.com/shopspring/decimal"

// Brokerage commission is progressive: each slice of the trade's notional
// value is charged at its own rate, like income-tax brackets. Rates follow
// the published NEPSE broker commission schedule.
var brokerageTiers = []struct {
	upTo decimal.Decimal // cumulative upper bound, zero means unbounded
	rate decimal.Decimal
}{
	{decimal.NewFromInt(50_000), decimal.NewFromFloat(0.0036)},
	{decimal.NewFromInt(500_000), decimal.NewFromFloat(0.0033)},
	{decimal.NewFromInt(2_000_000), decimal.NewFromFloat(0.0031)},
	{decimal.NewFromInt(10_000_000), decimal.NewFromFloat(0.0027)},
	{decimal.Zero, decimal.NewFromFloat(0.0024)},
}

// SEBON levies a flat regulatory fee on the notional value.
var sebonRate = decimal.NewFromFloat(0.00015)

// DPCharge is the fixed depository charge applied to every transaction
// regardless of size.
var DPCharge = decimal.NewFromInt(25)

// FeeBreakdown is the per-trade cost added on top of the notional value.
// It is computed per order and persisted only as its total.
type FeeBreakdown struct {
	Brokerage decimal.Decimal `json:"brokerage"`
	SebonFee  decimal.Decimal `json:"sebon_fee"`
	DPCharge  decimal.Decimal `json:"dp_charge"`
	TotalFees decimal.Decimal `json:"total_fees"`
}

// Brokerage computes the tiered commission on a notional value. Rounding
// happens once, after all tiers are accumulated, to 2 decimal places
// half-up.
func Brokerage(notional decimal.Decimal) decimal.Decimal {
	remaining := notional
	total := decimal.Zero
	prevUpper := decimal.Zero

	for _, tier := range brokerageTiers {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		slice := remaining
		if tier.upTo.IsPositive() {
			width := tier.upTo.Sub(prevUpper)
			if slice.GreaterThan(width) {
				slice = width
			}
			prevUpper = tier.upTo
		}
		total = total.Add(slice.Mul(tier.rate))
		remaining = remaining.Sub(slice)
	}

	return total.Round(2)
}

// ComputeFees maps a non-negative notional value to the full fee breakdown.
// Pure and total: a negative input is a caller contract violation.
func ComputeFees(notional decimal.Decimal) FeeBreakdown {
	brokerage := Brokerage(notional)
	sebon := notional.Mul(sebonRate).Round(2)

	return FeeBreakdown{
		Brokerage: brokerage,
		SebonFee:  sebon,
		DPCharge:  DPCharge,
		TotalFees: brokerage.Add(sebon).Add(DPCharge),
	}
}
