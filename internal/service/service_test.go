package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database. Immediate transactions plus a
// busy timeout make concurrent writers queue instead of failing, which is
// what the row locks give us on a server database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		models.User{}, models.Wallet{}, models.Position{}, models.Transaction{},
		models.Stock{}, models.WatchlistItem{}, models.MarketSnapshot{},
	)
	require.NoError(t, err)
	return db
}

// fakeSource is a scriptable quote feed.
type fakeSource struct {
	mu        sync.Mutex
	prices    map[string]decimal.Decimal
	failing   bool
	liveCalls int
}

func newFakeSource(prices map[string]float64) *fakeSource {
	converted := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		converted[symbol] = decimal.NewFromFloat(price)
	}
	return &fakeSource{prices: converted}
}

func (f *fakeSource) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *fakeSource) liveCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liveCalls
}

func (f *fakeSource) LiveMarket(ctx context.Context) (*nepse.LiveMarket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liveCalls++
	if f.failing {
		return nil, context.DeadlineExceeded
	}
	market := &nepse.LiveMarket{}
	for symbol, price := range f.prices {
		market.Ticks = append(market.Ticks, nepse.Tick{
			Symbol:          symbol,
			LastTradedPrice: price,
		})
	}
	return market, nil
}

func (f *fakeSource) MarketSummary(ctx context.Context) (*nepse.MarketSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, context.DeadlineExceeded
	}
	return &nepse.MarketSummary{MarketStatus: "OPEN"}, nil
}

func (f *fakeSource) StockDetail(ctx context.Context, symbol string) (*nepse.StockDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, context.DeadlineExceeded
	}
	return &nepse.StockDetail{Symbol: symbol, CompanyName: symbol + " Ltd"}, nil
}

func (f *fakeSource) PriceHistory(ctx context.Context, symbol string) ([]nepse.PricePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, context.DeadlineExceeded
	}
	return []nepse.PricePoint{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Nepse:   config.NepseConf{CacheTTLSeconds: 60},
		Trading: config.TradingConf{InitialBalance: 100000, MinLotSize: 10},
	}
}

// seedAccount inserts a user with a wallet at the given balance.
func seedAccount(t *testing.T, db *gorm.DB, balance float64) string {
	t.Helper()
	user := &models.User{
		ID:           ulid.Make().String(),
		Email:        ulid.Make().String() + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	wallet := &models.Wallet{
		ID:      ulid.Make().String(),
		UserID:  user.ID,
		Balance: decimal.NewFromFloat(balance),
	}
	require.NoError(t, db.Create(wallet).Error)
	return user.ID
}

func walletBalance(t *testing.T, db *gorm.DB, userID string) decimal.Decimal {
	t.Helper()
	wallet, err := repo.NewWalletRepo(db).FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	return wallet.Balance
}

func newTestMarket(t *testing.T, db *gorm.DB, source nepse.QuoteSource) *MarketService {
	t.Helper()
	return NewMarketService(db, source, testConfig(), zap.NewNop())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
