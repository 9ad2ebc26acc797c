package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// defaultCORSMaxAge is how long a browser can keep the answer to a preflight
// request.
const defaultCORSMaxAge = 12 * time.Hour

// CORSOptions contains different options to create a CORS middleware.
type CORSOptions struct {
	MaxAge time.Duration
	// Skip is a list of path prefixes that are not available cross-origin,
	// like /metrics.
	Skip []string
	// AllowedMethods are GET, HEAD and POST by default: the barcodes are
	// read-only.
	AllowedMethods []string
}

// CORS returns a middleware allowing the web pages of any origin to load
// the barcodes, with fetch or as images drawn on a canvas.
// See: https://developer.mozilla.org/en/docs/Web/HTTP/Access_control_CORS
func CORS(opts CORSOptions) echo.MiddlewareFunc {
	if opts.MaxAge <= 0 {
		opts.MaxAge = defaultCORSMaxAge
	}
	if opts.AllowedMethods == nil {
		opts.AllowedMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost}
	}
	maxAge := strconv.Itoa(int(opts.MaxAge.Seconds()))
	methods := strings.Join(opts.AllowedMethods, ",")

	skipped := func(path string) bool {
		for _, prefix := range opts.Skip {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			origin := req.Header.Get(echo.HeaderOrigin)
			if origin == "" || skipped(req.URL.Path) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add(echo.HeaderVary, echo.HeaderOrigin)
			h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			if req.Method != http.MethodOptions {
				return next(c)
			}

			// Preflight
			h.Add(echo.HeaderVary, echo.HeaderAccessControlRequestMethod)
			h.Add(echo.HeaderVary, echo.HeaderAccessControlRequestHeaders)
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			if headers := req.Header.Get(echo.HeaderAccessControlRequestHeaders); headers != "" {
				h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			}
			h.Set(echo.HeaderAccessControlMaxAge, maxAge)
			return c.NoContent(http.StatusNoContent)
		}
	}
}
