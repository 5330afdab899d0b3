package nepse

import "context"

// QuoteSource supplies market data for the exchange. Implementations must be
// safe for concurrent use and must not hold any lock shared with the ledger;
// callers bound each request with the context deadline.
type QuoteSource interface {
	LiveMarket(ctx context.Context) (*LiveMarket, error)
	MarketSummary(ctx context.Context) (*MarketSummary, error)
	StockDetail(ctx context.Context, symbol string) (*StockDetail, error)
	PriceHistory(ctx context.Context, symbol string) ([]PricePoint, error)
}
