package nepse

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// mockSymbols mirrors the watch set of the upstream mirror's sandbox feed.
var mockSymbols = []string{"NABIL", "NICA", "GBIME", "KBL", "PCAL", "SHIVM", "HRL"}

// MockSource generates plausible market data without touching the network.
// Used for local development and demos when the unofficial API is down. The
// random source is injected through the seed so runs are reproducible; there
// is no package-level state.
type MockSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	bases map[string]float64
}

var _ QuoteSource = (*MockSource)(nil)

// NewMockSource builds a mock feed. The same seed always produces the same
// base price per symbol and the same sequence of jitters.
func NewMockSource(seed int64) *MockSource {
	rng := rand.New(rand.NewSource(seed))
	bases := make(map[string]float64, len(mockSymbols))
	for _, sym := range mockSymbols {
		bases[sym] = 200 + rng.Float64()*1300
	}
	return &MockSource{rng: rng, bases: bases}
}

func (m *MockSource) LiveMarket(ctx context.Context) (*LiveMarket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	market := &LiveMarket{
		Ticks: make([]Tick, 0, len(mockSymbols)),
		AsOf:  time.Now(),
	}
	for _, sym := range mockSymbols {
		change := m.rng.Float64()*20 - 10
		price := m.bases[sym] + change
		market.Ticks = append(market.Ticks, Tick{
			Symbol:           sym,
			LastTradedPrice:  decimal.NewFromFloat(price).Round(2),
			PointChange:      decimal.NewFromFloat(change).Round(2),
			PercentageChange: decimal.NewFromFloat(change / m.bases[sym] * 100).Round(2),
			Volume:           1000 + m.rng.Int63n(49000),
		})
	}
	return market, nil
}

func (m *MockSource) MarketSummary(ctx context.Context) (*MarketSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := "Close"
	if IsTradingHours(time.Now()) {
		status = "Open"
	}

	return &MarketSummary{
		Index:             decimal.NewFromFloat(2100.50 + m.rng.Float64()*20 - 10).Round(2),
		TotalTurnover:     decimal.NewFromInt(5_000_000_000 + m.rng.Int63n(200_000_000) - 100_000_000),
		TotalTradedShares: 15_000_000 + m.rng.Int63n(1_000_000) - 500_000,
		MarketStatus:      status,
		AsOf:              time.Now(),
	}, nil
}

func (m *MockSource) StockDetail(ctx context.Context, symbol string) (*StockDetail, error) {
	symbol = strings.ToUpper(symbol)
	return &StockDetail{
		Symbol:        symbol,
		CompanyName:   fmt.Sprintf("%s Company Ltd.", symbol),
		Sector:        "Mock Sector",
		ListedShares:  10_000_000,
		PaidUpCapital: 1_000_000_000,
	}, nil
}

func (m *MockSource) PriceHistory(ctx context.Context, symbol string) ([]PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, ok := m.bases[strings.ToUpper(symbol)]
	if !ok {
		base = 200 + m.rng.Float64()*1300
	}

	points := make([]PricePoint, 0, 30)
	day := time.Now().In(NPT).AddDate(0, 0, -30)
	for i := 0; i < 30; i++ {
		base += m.rng.Float64()*10 - 5
		points = append(points, PricePoint{
			Date:   day.AddDate(0, 0, i).Format("2006-01-02"),
			Close:  decimal.NewFromFloat(base).Round(2),
			Volume: 5000 + m.rng.Int63n(15000),
		})
	}
	return points, nil
}
