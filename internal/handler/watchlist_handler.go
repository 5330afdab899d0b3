package handler

import (
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WatchlistHandler struct {
	logger           *zap.Logger
	watchlistService *service.WatchlistService
}

func NewWatchlistHandler(logger *zap.Logger, watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		logger:           logger,
		watchlistService: watchlistService,
	}
}

func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	watchlist := g.Group("/watchlist")
	watchlist.GET("", h.List)
	watchlist.POST("", h.Add)
	watchlist.PUT("/:symbol", h.Update)
	watchlist.DELETE("/:symbol", h.Remove)
}

type watchlistAddRequest struct {
	Symbol      string           `json:"symbol" validate:"required,max=20"`
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
}

// List returns the watchlist with live quotes attached.
// GET /api/watchlist
func (h *WatchlistHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	items, err := h.watchlistService.List(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add tracks a symbol, optionally with alert levels.
// POST /api/watchlist
func (h *WatchlistHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var req watchlistAddRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.watchlistService.Add(ctx, userID, req.Symbol, req.TargetPrice, req.StopLoss); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "added"})
}

type watchlistUpdateRequest struct {
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
}

// Update changes the alert levels on a tracked symbol.
// PUT /api/watchlist/:symbol
func (h *WatchlistHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var req watchlistUpdateRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}

	if err := h.watchlistService.UpdateAlerts(ctx, userID, c.Param("symbol"), req.TargetPrice, req.StopLoss); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "updated"})
}

// Remove stops tracking a symbol.
// DELETE /api/watchlist/:symbol
func (h *WatchlistHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	if err := h.watchlistService.Remove(ctx, userID, c.Param("symbol")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "removed"})
}
