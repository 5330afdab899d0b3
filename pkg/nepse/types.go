package nepse

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tick is one symbol's entry in the live market feed.
type Tick struct {
	Symbol           string          `json:"symbol"`
	LastTradedPrice  decimal.Decimal `json:"last_traded_price"`
	PointChange      decimal.Decimal `json:"point_change"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	Volume           int64           `json:"volume"`
}

// LiveMarket is a snapshot of the full quote set.
// Stale marks data served from a backup after the upstream source failed.
type LiveMarket struct {
	Ticks []Tick    `json:"ticks"`
	AsOf  time.Time `json:"as_of"`
	Stale bool      `json:"stale"`
}

// MarketSummary mirrors the exchange-wide summary block of the feed.
type MarketSummary struct {
	Index             decimal.Decimal `json:"nepse_index"`
	TotalTurnover     decimal.Decimal `json:"total_turnover"`
	TotalTradedShares int64           `json:"total_traded_shares"`
	MarketStatus      string          `json:"market_status"`
	AsOf              time.Time       `json:"as_of"`
	Stale             bool            `json:"stale"`
}

// StockDetail is the company profile for one listed symbol.
type StockDetail struct {
	Symbol        string `json:"symbol"`
	CompanyName   string `json:"company_name"`
	Sector        string `json:"sector"`
	ListedShares  int64  `json:"listed_shares"`
	PaidUpCapital int64  `json:"paid_up_capital"`
}

// PricePoint is one day of closing data for a symbol.
type PricePoint struct {
	Date   string          `json:"date"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}
