package web

import (
	"github.com/cozy/cozy-barcode/pkg/barcode"
	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/pkg/metrics"
	"github.com/cozy/cozy-barcode/web/barcodes"
	"github.com/cozy/cozy-barcode/web/errors"
	"github.com/cozy/cozy-barcode/web/middlewares"
	"github.com/cozy/cozy-barcode/web/status"
	"github.com/cozy/cozy-barcode/web/version"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRoutes sets the routing for HTTP endpoints
func SetupRoutes(router *echo.Echo, svc *barcode.Service) error {
	router.Use(metrics.TimersMiddleware)

	if build.IsDevRelease() {
		router.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "time=${time_rfc3339}\tstatus=${status}\tmethod=${method}\thost=${host}\turi=${uri}\tbytes_out=${bytes_out}\n",
		}))
	}

	router.Use(middlewares.CORS(middlewares.CORSOptions{
		Skip: []string{"/metrics"},
	}))

	barcodes.NewHTTPHandler(svc).Register(router.Group("/barcodes"))

	// monitoring routes
	{
		status.NewHTTPHandler(svc).Register(router.Group("/status"))
		version.Routes(router.Group("/version"))
		metrics.Routes(router.Group("/metrics"))
	}

	setupRecover(router)
	router.HTTPErrorHandler = errors.ErrorHandler
	return nil
}

// setupRecover sets a recovering strategy of panics happening in handlers
func setupRecover(router *echo.Echo) {
	if !build.IsDevRelease() {
		recoverMiddleware := middlewares.RecoverWithConfig(middlewares.RecoverConfig{
			StackSize: 10 << 10, // 10KB
		})
		router.Use(recoverMiddleware)
	}
}
