package service

import (
	"context"
	"errors"

	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Holding is one open position enriched with the current market value.
type Holding struct {
	Symbol        string          `json:"symbol"`
	Quantity      int64           `json:"quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	CostBasis     decimal.Decimal `json:"cost_basis"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	PnLPercent    decimal.Decimal `json:"pnl_percent"`
	PriceStale    bool            `json:"price_stale"`
}

// PortfolioSummary is the account-level view.
type PortfolioSummary struct {
	CashBalance   decimal.Decimal `json:"cash_balance"`
	HoldingsValue decimal.Decimal `json:"holdings_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	TradeCount    int64           `json:"trade_count"`
	Holdings      []Holding       `json:"holdings"`
}

// PortfolioService assembles the read-only account views. Valuations use
// live quotes where available; a symbol missing from the feed is valued at
// its average cost so one delisted ticker never breaks the whole summary.
type PortfolioService struct {
	logger *zap.Logger

	walletRepo      *repo.WalletRepo
	positionRepo    *repo.PositionRepo
	transactionRepo *repo.TransactionRepo
	market          *MarketService
}

func NewPortfolioService(db *gorm.DB, market *MarketService, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{
		logger:          logger,
		walletRepo:      repo.NewWalletRepo(db),
		positionRepo:    repo.NewPositionRepo(db),
		transactionRepo: repo.NewTransactionRepo(db),
		market:          market,
	}
}

// Holdings returns the user's open positions valued at current prices.
func (s *PortfolioService) Holdings(ctx context.Context, userID string) ([]Holding, error) {
	positions, err := s.positionRepo.FindHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings := make([]Holding, 0, len(positions))
	for _, position := range positions {
		quantity := decimal.NewFromInt(position.Quantity)
		costBasis := position.AverageCost.Mul(quantity)

		price := position.AverageCost
		stale := false
		tick, tickStale, err := s.market.Quote(ctx, position.Symbol)
		switch {
		case err == nil:
			price = tick.LastTradedPrice
			stale = tickStale
		case errors.Is(err, xe.ErrSymbolNotFound), errors.Is(err, xe.ErrMarketDataUnavailable):
			// Valued at cost until the feed knows the symbol again.
			stale = true
		default:
			return nil, err
		}

		currentValue := price.Mul(quantity)
		pnl := currentValue.Sub(costBasis)
		pnlPercent := decimal.Zero
		if !costBasis.IsZero() {
			pnlPercent = pnl.Div(costBasis).Mul(decimal.NewFromInt(100)).Round(2)
		}

		holdings = append(holdings, Holding{
			Symbol:        position.Symbol,
			Quantity:      position.Quantity,
			AverageCost:   position.AverageCost,
			CurrentPrice:  price,
			CurrentValue:  currentValue,
			CostBasis:     costBasis,
			UnrealizedPnL: pnl,
			PnLPercent:    pnlPercent,
			PriceStale:    stale,
		})
	}
	return holdings, nil
}

// Summary returns cash, holdings value and unrealized PnL in one view.
func (s *PortfolioService) Summary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrWalletNotFound
		}
		return nil, err
	}

	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	tradeCount, err := s.transactionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdingsValue := decimal.Zero
	unrealized := decimal.Zero
	for _, holding := range holdings {
		holdingsValue = holdingsValue.Add(holding.CurrentValue)
		unrealized = unrealized.Add(holding.UnrealizedPnL)
	}

	return &PortfolioSummary{
		CashBalance:   wallet.Balance,
		HoldingsValue: holdingsValue,
		TotalValue:    wallet.Balance.Add(holdingsValue),
		UnrealizedPnL: unrealized,
		TradeCount:    tradeCount,
		Holdings:      holdings,
	}, nil
}

// Balance returns just the wallet balance.
func (s *PortfolioService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, xe.ErrWalletNotFound
		}
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}
