package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContentTypeJSON is an echo middleware that checks that the HTTP Content-Type
// header is compatible with application/json
func ContentTypeJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		contentType := c.Request().Header.Get(echo.HeaderContentType)
		// Drop the charset if present
		if contentType != "" {
			contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
		}
		if contentType != echo.MIMEApplicationJSON {
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, "bad_content_type")
		}
		return next(c)
	}
}
