package handler

import (
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/OshimPathan/ShareSathi/pkg/nepse"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type TradingHandler struct {
	logger         *zap.Logger
	tradingService *service.TradingService
}

func NewTradingHandler(logger *zap.Logger, tradingService *service.TradingService) *TradingHandler {
	return &TradingHandler{
		logger:         logger,
		tradingService: tradingService,
	}
}

func (h *TradingHandler) RegisterRoutes(g *echo.Group) {
	trade := g.Group("/trade")
	trade.POST("/buy", h.Buy)
	trade.POST("/sell", h.Sell)
	trade.GET("/history", h.History)
	trade.GET("/fees", h.EstimateFees)
}

type orderRequest struct {
	Symbol   string `json:"symbol" validate:"required,max=20"`
	Quantity int64  `json:"quantity" validate:"required"`
}

// Buy executes a market buy at the current price.
// POST /api/trade/buy
func (h *TradingHandler) Buy(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	transaction, err := h.tradingService.ExecuteBuy(ctx, userID, req.Symbol, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transaction)
}

// Sell executes a market sell at the current price.
// POST /api/trade/sell
func (h *TradingHandler) Sell(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	transaction, err := h.tradingService.ExecuteSell(ctx, userID, req.Symbol, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transaction)
}

// History lists the user's recent trades.
// GET /api/trade/history?limit=50
func (h *TradingHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	limit := cast.ToInt(c.QueryParam("limit"))
	history, err := h.tradingService.History(ctx, userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// EstimateFees previews the fee breakdown for a notional amount without
// placing an order.
// GET /api/trade/fees?amount=100000
func (h *TradingHandler) EstimateFees(c echo.Context) error {
	amount := cast.ToFloat64(c.QueryParam("amount"))
	if amount <= 0 {
		return xe.ErrInvalidParams
	}
	return c.JSON(http.StatusOK, nepse.ComputeFees(decimal.NewFromFloat(amount)))
}
