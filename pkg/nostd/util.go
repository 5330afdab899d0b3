package nostd

import "github.com/labstack/echo/v4"

const Token = "ShareSathi-Token"

// GetToken extracts the auth token from the header, query string or cookie,
// in that order. The query string form exists for websocket clients that
// cannot set headers.
func GetToken(c echo.Context) string {
	token := c.Request().Header.Get(Token)
	if len(token) > 0 {
		return token
	}
	token = c.QueryParam(Token)
	if token != "" {
		return token
	}
	cookie, err := c.Cookie(Token)
	if err != nil {
		return ""
	}
	return cookie.Value
}
