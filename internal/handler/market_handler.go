package handler

import (
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MarketHandler struct {
	logger        *zap.Logger
	marketService *service.MarketService
}

func NewMarketHandler(logger *zap.Logger, marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		logger:        logger,
		marketService: marketService,
	}
}

func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	market := g.Group("/market")
	market.GET("/live", h.Live)
	market.GET("/summary", h.Summary)
	market.GET("/status", h.Status)

	stocks := g.Group("/stocks")
	stocks.GET("/:symbol", h.StockDetail)
	stocks.GET("/:symbol/history", h.PriceHistory)
}

// Live returns the full quote set.
// GET /api/market/live
func (h *MarketHandler) Live(c echo.Context) error {
	market, err := h.marketService.Live(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, market)
}

// Summary returns the exchange-wide summary.
// GET /api/market/summary
func (h *MarketHandler) Summary(c echo.Context) error {
	summary, err := h.marketService.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Status reports whether the exchange is currently in its trading window.
// GET /api/market/status
func (h *MarketHandler) Status(c echo.Context) error {
	now := nepse.Now()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"is_open":    nepse.IsTradingHours(now),
		"local_time": now.Format("2006-01-02 15:04:05"),
		"timezone":   "Asia/Kathmandu",
	})
}

// StockDetail returns one company's profile.
// GET /api/stocks/:symbol
func (h *MarketHandler) StockDetail(c echo.Context) error {
	detail, err := h.marketService.StockDetail(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// PriceHistory returns daily closes.
// GET /api/stocks/:symbol/history
func (h *MarketHandler) PriceHistory(c echo.Context) error {
	points, err := h.marketService.PriceHistory(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, points)
}
