//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/OshimPathan/ShareSathi/internal/background"
	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/handler"
	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/internal/ws"
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	handlerSet = wire.NewSet(
		handler.NewAuthHandler,
		handler.NewMarketHandler,
		handler.NewTradingHandler,
		handler.NewPortfolioHandler,
		handler.NewWatchlistHandler,
	)

	serviceSet = wire.NewSet(
		provideQuoteSource,
		service.NewAuthService,
		service.NewMarketService,
		service.NewTradingService,
		service.NewPortfolioService,
		service.NewWatchlistService,
		ws.NewHub,
		background.NewMarketSync,
	)
)

func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}
