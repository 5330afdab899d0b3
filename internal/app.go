package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/background"
	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/handler"
	appmiddleware "github.com/OshimPathan/ShareSathi/internal/middleware"
	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/internal/ws"
	"github.com/OshimPathan/ShareSathi/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func Run(configPath string) error {
	app := NewShareSathiApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewShareSathiApp() orz.Application {
	return &ShareSathiApp{}
}

var _ orz.Application = (*ShareSathiApp)(nil)

type AppComponents struct {
	AuthHandler      *handler.AuthHandler
	MarketHandler    *handler.MarketHandler
	TradingHandler   *handler.TradingHandler
	PortfolioHandler *handler.PortfolioHandler
	WatchlistHandler *handler.WatchlistHandler

	AuthService      *service.AuthService
	MarketService    *service.MarketService
	TradingService   *service.TradingService
	PortfolioService *service.PortfolioService
	WatchlistService *service.WatchlistService

	Hub        *ws.Hub
	MarketSync *background.MarketSync
}

type ShareSathiApp struct {
	components *AppComponents
	conf       *config.Config
}

func (r *ShareSathiApp) GetComponents() *AppComponents {
	return r.components
}

func (r *ShareSathiApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(
		models.User{}, models.Wallet{}, models.Position{}, models.Transaction{},
		models.Stock{}, models.WatchlistItem{}, models.MarketSnapshot{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))
	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Sugar().Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	api := e.Group("/api")
	{
		// Public surface
		r.components.AuthHandler.RegisterRoutes(api)
		r.components.MarketHandler.RegisterRoutes(api)

		// Everything else requires a token
		protected := api.Group("", appmiddleware.JWTAuth(appmiddleware.JWTAuthConfig{
			AuthService: r.components.AuthService,
			Logger:      logger,
		}))
		r.components.AuthHandler.RegisterProtectedRoutes(protected)
		r.components.TradingHandler.RegisterRoutes(protected)
		r.components.PortfolioHandler.RegisterRoutes(protected)
		r.components.WatchlistHandler.RegisterRoutes(protected)
		protected.GET("/ws", r.components.Hub.Serve)
	}

	return nil
}

func (r *ShareSathiApp) Init(logger *zap.Logger) error {
	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	logger.Info("ShareSathi paper trading backend starting...")

	ctx := context.Background()
	go components.Hub.Run(ctx)

	if err := components.MarketSync.Start(ctx); err != nil {
		return err
	}
	return nil
}
