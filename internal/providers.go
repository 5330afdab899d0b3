package internal

import (
	"time"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"go.uber.org/zap"
)

// provideQuoteSource picks the live client or the deterministic mock feed.
func provideQuoteSource(conf *config.Config, logger *zap.Logger) nepse.QuoteSource {
	if conf.Nepse.UseMock {
		seed := conf.Nepse.MockSeed
		if seed == 0 {
			seed = 1
		}
		logger.Info("using mock market data source", zap.Int64("seed", seed))
		return nepse.NewMockSource(seed)
	}

	timeout := time.Duration(conf.Nepse.TimeoutOrDefault()) * time.Second
	logger.Info("using live market data source",
		zap.String("base_url", conf.Nepse.BaseURL),
		zap.Duration("timeout", timeout))
	return nepse.NewClient(conf.Nepse.BaseURL, timeout, logger)
}
