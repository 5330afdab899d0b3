package handler

import (
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PortfolioHandler struct {
	logger           *zap.Logger
	portfolioService *service.PortfolioService
}

func NewPortfolioHandler(logger *zap.Logger, portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		logger:           logger,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	portfolio := g.Group("/portfolio")
	portfolio.GET("", h.Summary)
	portfolio.GET("/holdings", h.Holdings)
	portfolio.GET("/wallet", h.Wallet)
}

// Summary returns the full account view.
// GET /api/portfolio
func (h *PortfolioHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	summary, err := h.portfolioService.Summary(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Holdings returns open positions valued at current prices.
// GET /api/portfolio/holdings
func (h *PortfolioHandler) Holdings(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	holdings, err := h.portfolioService.Holdings(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, holdings)
}

// Wallet returns the cash balance only.
// GET /api/portfolio/wallet
func (h *PortfolioHandler) Wallet(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	balance, err := h.portfolioService.Balance(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"balance": balance})
}
