package background

import (
	"context"
	"fmt"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runs shortly after the 15:00 close so the last session's prices are
// captured. Sunday through Thursday are NEPSE trading days.
const eodSyncSpec = "15 15 * * SUN-THU"

// MarketSync refreshes the snapshot backup and the stocks table after each
// trading session.
type MarketSync struct {
	logger *zap.Logger
	market *service.MarketService

	cron      *cron.Cron
	isRunning bool
}

func NewMarketSync(market *service.MarketService, logger *zap.Logger) *MarketSync {
	return &MarketSync{
		logger: logger,
		market: market,
	}
}

// Start schedules the end-of-day job in Nepal Time and runs one immediate
// sync so a fresh deployment has data before the first close.
func (m *MarketSync) Start(ctx context.Context) error {
	if m.isRunning {
		return fmt.Errorf("market sync is already running")
	}
	m.isRunning = true

	m.cron = cron.New(cron.WithLocation(nepse.NPT))
	_, err := m.cron.AddFunc(eodSyncSpec, func() {
		m.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule market sync: %w", err)
	}
	m.cron.Start()

	m.logger.Info("market sync scheduled",
		zap.String("cron_expression", eodSyncSpec),
		zap.String("timezone", "NPT"))

	go m.runOnce(ctx)
	return nil
}

func (m *MarketSync) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := m.market.Refresh(ctx); err != nil {
		m.logger.Error("market sync failed", zap.Error(err))
		return
	}
	m.logger.Info("market sync completed", zap.Duration("took", time.Since(start)))
}

// Stop halts the scheduler and waits for a running job to finish.
func (m *MarketSync) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
		m.logger.Info("market sync stopped")
	}
	m.isRunning = false
}
