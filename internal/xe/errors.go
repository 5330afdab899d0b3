package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams    = orz.NewError(10400, "invalid request parameters")
	ErrInvalidToken     = orz.NewError(10403, "invalid or expired token")
	ErrPermissionDenied = orz.NewError(10401, "you are not allowed to access this resource")

	ErrAccountAlreadyUsed = orz.NewError(10000, "email is already registered")
	ErrIncorrectPassword  = orz.NewError(10001, "incorrect email or password")
	ErrUserDisabled       = orz.NewError(10002, "account has been disabled")

	ErrInvalidQuantity      = orz.NewError(10100, "quantity must be greater than zero")
	ErrBelowMinimumLot      = orz.NewError(10101, "quantity is below the minimum lot size")
	ErrInsufficientFunds    = orz.NewError(10102, "insufficient wallet balance")
	ErrInsufficientPosition = orz.NewError(10103, "insufficient share quantity")
	ErrMarketClosed         = orz.NewError(10104, "market is closed for trading")

	ErrWalletNotFound        = orz.NewError(10404, "wallet not found")
	ErrSymbolNotFound        = orz.NewError(10405, "symbol not found in live market")
	ErrWatchlistItemNotFound = orz.NewError(10406, "symbol not in watchlist")
	ErrMarketDataUnavailable = orz.NewError(10503, "market data unavailable")
)
