package middlewares

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/labstack/echo/v4"
)

// defaultStackSize is the number of bytes of the stack trace that are logged.
const defaultStackSize = 4 << 10

// RecoverConfig defines the config for Recover middleware.
type RecoverConfig struct {
	// StackSize is the number of bytes of the stack logged with the panic.
	StackSize int
}

// RecoverWithConfig returns a middleware that turns a panic in a handler,
// like a rasterizer failing on an unexpected document, into a 500 response.
// The panic is logged with the request and the stack trace.
func RecoverWithConfig(config RecoverConfig) echo.MiddlewareFunc {
	if config.StackSize <= 0 {
		config.StackSize = defaultStackSize
	}
	log := logger.WithNamespace("http").WithField("panic", true)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				stack := make([]byte, config.StackSize)
				stack = stack[:runtime.Stack(stack, false)]
				req := c.Request()
				log.WithFields(logger.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}).Errorf("%s: %s", perr, stack)
				err = echo.NewHTTPError(http.StatusInternalServerError).SetInternal(perr)
			}()
			return next(c)
		}
	}
}
