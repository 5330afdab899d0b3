package internal

import (
	"errors"
	"net/http"

	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func WithErrorHandler(logger *zap.Logger) func(next echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					return c.JSON(he.Code, orz.Map{
						"code":    he.Code,
						"message": err.Error(),
					})
				}

				var oe *orz.Error
				if errors.As(err, &oe) {
					return c.JSON(httpStatusFor(err), orz.Map{
						"code":    oe.Code,
						"message": err.Error(),
					})
				}

				logger.Sugar().Error("api", zap.Error(err))

				return c.JSON(500, orz.Map{
					"code":    500,
					"message": err.Error(),
				})
			}
			return nil
		}
	}
}

func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, xe.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, xe.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, xe.ErrWalletNotFound),
		errors.Is(err, xe.ErrSymbolNotFound),
		errors.Is(err, xe.ErrWatchlistItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, xe.ErrMarketDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
