package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TradingService executes simulated buy and sell orders against the virtual
// ledger. Each order is one atomic unit: wallet delta, position upsert and
// transaction insert commit together or not at all. The price is fetched
// before any lock is taken so the critical section never waits on the
// upstream API, and both paths lock wallet first, then position, so
// concurrent buys and sells for one user cannot deadlock.
type TradingService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TransactionRepo

	walletRepo   *repo.WalletRepo
	positionRepo *repo.PositionRepo
	market       *MarketService

	minLotSize   int64
	enforceHours bool
}

func NewTradingService(db *gorm.DB, market *MarketService, conf *config.Config, logger *zap.Logger) *TradingService {
	return &TradingService{
		logger:          logger,
		Service:         orz.NewService(db),
		TransactionRepo: repo.NewTransactionRepo(db),
		walletRepo:      repo.NewWalletRepo(db),
		positionRepo:    repo.NewPositionRepo(db),
		market:          market,
		minLotSize:      conf.Trading.MinLotSizeOrDefault(),
		enforceHours:    conf.Trading.EnforceMarketHours,
	}
}

// validateOrder applies the pre-I/O checks shared by both sides.
func (s *TradingService) validateOrder(quantity int64) error {
	if quantity <= 0 {
		return xe.ErrInvalidQuantity
	}
	if quantity < s.minLotSize {
		return xe.ErrBelowMinimumLot
	}
	return nil
}

// checkMarketHours logs the clock state and, only when enforcement is
// configured, turns a closed market into a rejection. By default paper
// trades are accepted around the clock.
func (s *TradingService) checkMarketHours(side models.TradeSide, symbol string) error {
	open := nepse.IsTradingHours(time.Now())
	s.logger.Info("order received",
		zap.String("side", side.String()),
		zap.String("symbol", symbol),
		zap.Bool("market_open", open))

	if s.enforceHours && !open {
		return xe.ErrMarketClosed
	}
	return nil
}

// ExecuteBuy buys quantity shares of symbol for the user at the current
// last-traded price plus fees.
func (s *TradingService) ExecuteBuy(ctx context.Context, userID, symbol string, quantity int64) (*models.Transaction, error) {
	symbol = strings.ToUpper(symbol)

	if err := s.validateOrder(quantity); err != nil {
		return nil, err
	}
	if err := s.checkMarketHours(models.TradeSideBuy, symbol); err != nil {
		return nil, err
	}

	tick, stale, err := s.market.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if stale {
		s.logger.Warn("executing against stale quote", zap.String("symbol", symbol))
	}

	price := tick.LastTradedPrice
	notional := price.Mul(decimal.NewFromInt(quantity))
	fees := nepse.ComputeFees(notional)
	totalCost := notional.Add(fees.TotalFees)

	var transaction *models.Transaction
	err = s.Transaction(ctx, func(ctx context.Context) error {
		// Global lock order: wallet, then position.
		wallet, err := s.walletRepo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return xe.ErrWalletNotFound
			}
			return err
		}

		if wallet.Balance.LessThan(totalCost) {
			s.logger.Info("buy rejected: insufficient funds",
				zap.String("user_id", userID),
				zap.String("symbol", symbol),
				zap.String("balance", wallet.Balance.String()),
				zap.String("total_cost", totalCost.String()))
			return xe.ErrInsufficientFunds
		}

		position, err := s.positionRepo.FindByUserAndSymbolForUpdate(ctx, userID, symbol)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			position = models.Position{
				ID:          ulid.Make().String(),
				UserID:      userID,
				Symbol:      symbol,
				Quantity:    quantity,
				AverageCost: price,
			}
			if err := s.positionRepo.Create(ctx, &position); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// Weighted average cost over the combined holding; fees stay a
			// wallet-level expense and never enter the cost basis.
			oldValue := position.AverageCost.Mul(decimal.NewFromInt(position.Quantity))
			newQuantity := position.Quantity + quantity
			position.AverageCost = oldValue.Add(notional).DivRound(decimal.NewFromInt(newQuantity), 2)
			position.Quantity = newQuantity
			if err := s.positionRepo.Save(ctx, &position); err != nil {
				return err
			}
		}

		wallet.Balance = wallet.Balance.Sub(totalCost)
		if err := s.walletRepo.Save(ctx, &wallet); err != nil {
			return err
		}

		transaction = &models.Transaction{
			ID:        ulid.Make().String(),
			UserID:    userID,
			Symbol:    symbol,
			Side:      models.TradeSideBuy,
			Quantity:  quantity,
			Price:     price,
			TotalFees: fees.TotalFees,
			Timestamp: time.Now(),
		}
		return s.TransactionRepo.Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("buy executed",
		zap.String("user_id", userID),
		zap.String("symbol", symbol),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.String("total_fees", fees.TotalFees.String()))

	return transaction, nil
}

// ExecuteSell sells quantity shares of symbol for the user at the current
// last-traded price, crediting the notional minus fees.
func (s *TradingService) ExecuteSell(ctx context.Context, userID, symbol string, quantity int64) (*models.Transaction, error) {
	symbol = strings.ToUpper(symbol)

	if err := s.validateOrder(quantity); err != nil {
		return nil, err
	}
	if err := s.checkMarketHours(models.TradeSideSell, symbol); err != nil {
		return nil, err
	}

	tick, stale, err := s.market.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if stale {
		s.logger.Warn("executing against stale quote", zap.String("symbol", symbol))
	}

	price := tick.LastTradedPrice
	notional := price.Mul(decimal.NewFromInt(quantity))
	fees := nepse.ComputeFees(notional)
	netProceeds := notional.Sub(fees.TotalFees)

	var transaction *models.Transaction
	err = s.Transaction(ctx, func(ctx context.Context) error {
		// Same lock order as the buy path: wallet, then position.
		wallet, err := s.walletRepo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return xe.ErrWalletNotFound
			}
			return err
		}

		position, err := s.positionRepo.FindByUserAndSymbolForUpdate(ctx, userID, symbol)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return xe.ErrInsufficientPosition
			}
			return err
		}
		if position.Quantity < quantity {
			s.logger.Info("sell rejected: insufficient position",
				zap.String("user_id", userID),
				zap.String("symbol", symbol),
				zap.Int64("held", position.Quantity),
				zap.Int64("requested", quantity))
			return xe.ErrInsufficientPosition
		}

		position.Quantity -= quantity
		if position.Quantity == 0 {
			// No stale cost basis on an empty position; the row itself is
			// kept so repeat round-trips reuse it.
			position.AverageCost = decimal.Zero
		}
		if err := s.positionRepo.Save(ctx, &position); err != nil {
			return err
		}

		wallet.Balance = wallet.Balance.Add(netProceeds)
		if err := s.walletRepo.Save(ctx, &wallet); err != nil {
			return err
		}

		transaction = &models.Transaction{
			ID:        ulid.Make().String(),
			UserID:    userID,
			Symbol:    symbol,
			Side:      models.TradeSideSell,
			Quantity:  quantity,
			Price:     price,
			TotalFees: fees.TotalFees,
			Timestamp: time.Now(),
		}
		return s.TransactionRepo.Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sell executed",
		zap.String("user_id", userID),
		zap.String("symbol", symbol),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.String("total_fees", fees.TotalFees.String()))

	return transaction, nil
}

// History returns the user's most recent transactions.
func (s *TradingService) History(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.TransactionRepo.FindRecentByUser(ctx, userID, limit)
}
