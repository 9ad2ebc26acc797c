package middlewares

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// CacheMode is an enum to define a cache-control mode
type CacheMode int

const (
	// NoCache is for the no-cache control mode
	NoCache CacheMode = iota + 1
	// NoStore is for the no-store control mode
	NoStore
)

// CacheOptions contains different options for the CacheControl middleware.
type CacheOptions struct {
	MaxAge         time.Duration
	Public         bool
	Private        bool
	Immutable      bool
	MustRevalidate bool
	Mode           CacheMode
}

// CacheControl returns a middleware to handle HTTP caching options. The
// header is only sent with successful responses.
func CacheControl(opts CacheOptions) echo.MiddlewareFunc {
	cache := ""
	switch {
	case opts.Private:
		cache = "private"
	case opts.Public:
		cache = "public"
	}
	switch opts.Mode {
	case NoCache:
		cache = appendHeader(cache, "no-cache")
	case NoStore:
		cache = appendHeader(cache, "no-store")
	}
	if opts.MustRevalidate {
		cache = appendHeader(cache, "must-revalidate")
	}
	if maxAge := opts.MaxAge; maxAge > 0 {
		cache = appendHeader(cache, fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
	}
	if opts.Immutable {
		cache = appendHeader(cache, "immutable")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cache == "" {
				return next(c)
			}
			res := c.Response()
			res.Before(func() {
				if res.Status < 300 {
					res.Header().Set(echo.HeaderCacheControl, cache)
				}
			})
			return next(c)
		}
	}
}

func appendHeader(h, val string) string {
	if h == "" {
		return val
	}
	return h + ", " + val
}
