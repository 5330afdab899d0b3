package service

import (
	"context"
	"errors"
	"strings"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WatchedStock is one watchlist entry joined with its live quote.
type WatchedStock struct {
	Symbol           string           `json:"symbol"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	StopLoss         *decimal.Decimal `json:"stop_loss,omitempty"`
	LastTradedPrice  *decimal.Decimal `json:"last_traded_price,omitempty"`
	PercentageChange *decimal.Decimal `json:"percentage_change,omitempty"`
}

// WatchlistService manages per-user tracked symbols.
type WatchlistService struct {
	logger *zap.Logger

	watchlistRepo *repo.WatchlistRepo
	market        *MarketService
}

func NewWatchlistService(db *gorm.DB, market *MarketService, logger *zap.Logger) *WatchlistService {
	return &WatchlistService{
		logger:        logger,
		watchlistRepo: repo.NewWatchlistRepo(db),
		market:        market,
	}
}

// Add puts a symbol on the user's watchlist. The symbol must exist in the
// live feed; adding an already-watched symbol updates its alert levels.
func (s *WatchlistService) Add(ctx context.Context, userID, symbol string, targetPrice, stopLoss *decimal.Decimal) error {
	symbol = strings.ToUpper(symbol)

	if _, _, err := s.market.Quote(ctx, symbol); err != nil {
		return err
	}

	existing, err := s.watchlistRepo.FindByUserAndSymbol(ctx, userID, symbol)
	if err == nil {
		existing.TargetPrice = targetPrice
		existing.StopLoss = stopLoss
		return s.watchlistRepo.Save(ctx, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := &models.WatchlistItem{
		ID:          ulid.Make().String(),
		UserID:      userID,
		Symbol:      symbol,
		TargetPrice: targetPrice,
		StopLoss:    stopLoss,
	}
	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		return err
	}

	s.logger.Info("watchlist add",
		zap.String("user_id", userID),
		zap.String("symbol", symbol))
	return nil
}

// UpdateAlerts changes the alert levels on an existing entry.
func (s *WatchlistService) UpdateAlerts(ctx context.Context, userID, symbol string, targetPrice, stopLoss *decimal.Decimal) error {
	symbol = strings.ToUpper(symbol)

	item, err := s.watchlistRepo.FindByUserAndSymbol(ctx, userID, symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return xe.ErrWatchlistItemNotFound
		}
		return err
	}

	item.TargetPrice = targetPrice
	item.StopLoss = stopLoss
	return s.watchlistRepo.Save(ctx, &item)
}

// Remove takes a symbol off the user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, symbol string) error {
	symbol = strings.ToUpper(symbol)
	existed, err := s.watchlistRepo.DeleteByUserAndSymbol(ctx, userID, symbol)
	if err != nil {
		return err
	}
	if !existed {
		return xe.ErrWatchlistItemNotFound
	}
	return nil
}

// List returns the watchlist with current quotes attached where the feed
// has them.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]WatchedStock, error) {
	items, err := s.watchlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	watched := make([]WatchedStock, 0, len(items))
	for _, item := range items {
		entry := WatchedStock{
			Symbol:      item.Symbol,
			TargetPrice: item.TargetPrice,
			StopLoss:    item.StopLoss,
		}
		if tick, _, err := s.market.Quote(ctx, item.Symbol); err == nil {
			price := tick.LastTradedPrice
			change := tick.PercentageChange
			entry.LastTradedPrice = &price
			entry.PercentageChange = &change
		}
		watched = append(watched, entry)
	}
	return watched, nil
}
