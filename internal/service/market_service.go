package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MarketService is the caching shim between the app and the unofficial
// NEPSE API. Quotes are cached in memory for a configured TTL; when the
// upstream fails, the last good payload is served marked stale — first from
// memory, then from the database backup. Staleness never blocks paper
// trades by itself, but a feed with no data at all does.
type MarketService struct {
	logger *zap.Logger

	*orz.Service
	*repo.MarketSnapshotRepo

	stockRepo *repo.StockRepo
	source    nepse.QuoteSource
	ttl       time.Duration

	mu             sync.RWMutex
	live           *nepse.LiveMarket
	liveFetched    time.Time
	summary        *nepse.MarketSummary
	summaryFetched time.Time
}

func NewMarketService(db *gorm.DB, source nepse.QuoteSource, conf *config.Config, logger *zap.Logger) *MarketService {
	return &MarketService{
		logger:             logger,
		Service:            orz.NewService(db),
		MarketSnapshotRepo: repo.NewMarketSnapshotRepo(db),
		stockRepo:          repo.NewStockRepo(db),
		source:             source,
		ttl:                time.Duration(conf.Nepse.CacheTTLOrDefault()) * time.Second,
	}
}

// Live returns the current quote set, served from cache when fresh.
func (s *MarketService) Live(ctx context.Context) (*nepse.LiveMarket, error) {
	s.mu.RLock()
	if s.live != nil && time.Since(s.liveFetched) < s.ttl {
		cached := *s.live
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	market, err := s.source.LiveMarket(ctx)
	if err != nil || len(market.Ticks) == 0 {
		if err != nil {
			s.logger.Warn("live market fetch failed, falling back", zap.Error(err))
		}
		return s.staleLive(ctx)
	}

	s.mu.Lock()
	s.live = market
	s.liveFetched = time.Now()
	s.mu.Unlock()

	s.backupSnapshot(ctx, models.SnapshotKindLiveMarket, market)

	cached := *market
	return &cached, nil
}

// staleLive serves the last good live market payload, marked stale.
func (s *MarketService) staleLive(ctx context.Context) (*nepse.LiveMarket, error) {
	s.mu.RLock()
	if s.live != nil {
		stale := *s.live
		s.mu.RUnlock()
		stale.Stale = true
		return &stale, nil
	}
	s.mu.RUnlock()

	snapshot, err := s.MarketSnapshotRepo.FindByKind(ctx, models.SnapshotKindLiveMarket)
	if err != nil {
		return nil, xe.ErrMarketDataUnavailable
	}
	var market nepse.LiveMarket
	if err := json.Unmarshal(snapshot.Payload, &market); err != nil {
		s.logger.Error("corrupt live market backup", zap.Error(err))
		return nil, xe.ErrMarketDataUnavailable
	}
	market.Stale = true
	return &market, nil
}

// Quote returns the current last-traded price for one symbol. A feed with
// no data at all is a service-unavailable condition; a missing symbol in an
// otherwise healthy feed is not-found.
func (s *MarketService) Quote(ctx context.Context, symbol string) (nepse.Tick, bool, error) {
	market, err := s.Live(ctx)
	if err != nil {
		return nepse.Tick{}, false, err
	}

	symbol = strings.ToUpper(symbol)
	for _, tick := range market.Ticks {
		if tick.Symbol == symbol {
			return tick, market.Stale, nil
		}
	}
	return nepse.Tick{}, market.Stale, xe.ErrSymbolNotFound
}

// Summary returns the exchange-wide summary, cached like Live.
func (s *MarketService) Summary(ctx context.Context) (*nepse.MarketSummary, error) {
	s.mu.RLock()
	if s.summary != nil && time.Since(s.summaryFetched) < s.ttl {
		cached := *s.summary
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	summary, err := s.source.MarketSummary(ctx)
	if err != nil {
		s.logger.Warn("market summary fetch failed, falling back", zap.Error(err))
		return s.staleSummary(ctx)
	}

	s.mu.Lock()
	s.summary = summary
	s.summaryFetched = time.Now()
	s.mu.Unlock()

	s.backupSnapshot(ctx, models.SnapshotKindMarketSummary, summary)

	cached := *summary
	return &cached, nil
}

func (s *MarketService) staleSummary(ctx context.Context) (*nepse.MarketSummary, error) {
	s.mu.RLock()
	if s.summary != nil {
		stale := *s.summary
		s.mu.RUnlock()
		stale.Stale = true
		return &stale, nil
	}
	s.mu.RUnlock()

	snapshot, err := s.MarketSnapshotRepo.FindByKind(ctx, models.SnapshotKindMarketSummary)
	if err != nil {
		return nil, xe.ErrMarketDataUnavailable
	}
	var summary nepse.MarketSummary
	if err := json.Unmarshal(snapshot.Payload, &summary); err != nil {
		s.logger.Error("corrupt market summary backup", zap.Error(err))
		return nil, xe.ErrMarketDataUnavailable
	}
	summary.Stale = true
	return &summary, nil
}

// backupSnapshot persists the last good payload for stale fallback across
// restarts. Best effort: a failed backup never fails the request.
func (s *MarketService) backupSnapshot(ctx context.Context, kind string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal market snapshot", zap.String("kind", kind), zap.Error(err))
		return
	}
	snapshot := &models.MarketSnapshot{
		ID:         ulid.Make().String(),
		Kind:       kind,
		Payload:    raw,
		CapturedAt: time.Now(),
	}
	if err := s.MarketSnapshotRepo.Upsert(ctx, snapshot); err != nil {
		s.logger.Error("failed to persist market snapshot", zap.String("kind", kind), zap.Error(err))
	}
}

// StockDetail returns the company profile, preferring the local stocks
// table and falling back to the upstream source.
func (s *MarketService) StockDetail(ctx context.Context, symbol string) (*nepse.StockDetail, error) {
	symbol = strings.ToUpper(symbol)

	stock, err := s.stockRepo.FindById(ctx, symbol)
	if err == nil {
		return &nepse.StockDetail{
			Symbol:       stock.Symbol,
			CompanyName:  stock.CompanyName,
			Sector:       stock.Sector,
			ListedShares: stock.ListedShares,
		}, nil
	}

	detail, err := s.source.StockDetail(ctx, symbol)
	if err != nil {
		return nil, xe.ErrSymbolNotFound
	}
	return detail, nil
}

// PriceHistory returns daily closes for one symbol.
func (s *MarketService) PriceHistory(ctx context.Context, symbol string) ([]nepse.PricePoint, error) {
	points, err := s.source.PriceHistory(ctx, strings.ToUpper(symbol))
	if err != nil {
		s.logger.Warn("price history fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, xe.ErrMarketDataUnavailable
	}
	return points, nil
}

// Refresh re-fetches live market and summary ignoring the TTL, then syncs
// the stocks table from the fresh quote set. Called by the EOD worker.
func (s *MarketService) Refresh(ctx context.Context) error {
	market, err := s.source.LiveMarket(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.live = market
	s.liveFetched = time.Now()
	s.mu.Unlock()
	s.backupSnapshot(ctx, models.SnapshotKindLiveMarket, market)

	if summary, err := s.source.MarketSummary(ctx); err == nil {
		s.mu.Lock()
		s.summary = summary
		s.summaryFetched = time.Now()
		s.mu.Unlock()
		s.backupSnapshot(ctx, models.SnapshotKindMarketSummary, summary)
	} else {
		s.logger.Warn("summary refresh failed", zap.Error(err))
	}

	for _, tick := range market.Ticks {
		detail, err := s.source.StockDetail(ctx, tick.Symbol)
		if err != nil {
			s.logger.Warn("stock detail sync failed", zap.String("symbol", tick.Symbol), zap.Error(err))
			continue
		}
		stock := &models.Stock{
			Symbol:       detail.Symbol,
			CompanyName:  detail.CompanyName,
			Sector:       detail.Sector,
			ListedShares: detail.ListedShares,
		}
		if err := s.stockRepo.Upsert(ctx, stock); err != nil {
			s.logger.Error("stock upsert failed", zap.String("symbol", tick.Symbol), zap.Error(err))
		}
	}

	return nil
}
