// Package status is here just to say that the API is up and that it can
// access the cache, for debugging and monitoring purposes.
package status

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const checkTimeout = 5 * time.Second

// Checker is implemented by the services that can report their health, like
// the cache.
type Checker interface {
	CheckStatus(ctx context.Context) (time.Duration, error)
}

// HTTPHandler handle the status routes.
type HTTPHandler struct {
	cache Checker
}

// NewHTTPHandler instantiates a new [HTTPHandler].
func NewHTTPHandler(cache Checker) *HTTPHandler {
	return &HTTPHandler{cache: cache}
}

// Status responds with the status of the service
func (h *HTTPHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	cacheStatus := "healthy"
	latency, err := h.cache.CheckStatus(ctx)
	if err != nil {
		cacheStatus = err.Error()
	}

	code := http.StatusOK
	status := "OK"
	if cacheStatus != "healthy" {
		code = http.StatusBadGateway
		status = "KO"
	}

	return c.JSON(code, echo.Map{
		"cache":   cacheStatus,
		"latency": latency.String(),
		"status":  status,
	})
}

// Register sets the routing for the status service
func (h *HTTPHandler) Register(router *echo.Group) {
	router.GET("", h.Status)
	router.HEAD("", h.Status)
	router.GET("/", h.Status)
	router.HEAD("/", h.Status)
}
