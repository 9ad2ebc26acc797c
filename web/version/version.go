// Package version gives informations about the version of cozy-barcode
package version

import (
	"net/http"

	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/labstack/echo/v4"
)

// Version responds with the build information of the binary
func Version(c echo.Context) error {
	return c.JSON(http.StatusOK, build.Current())
}

// Routes sets the routing for the version service
func Routes(router *echo.Group) {
	router.GET("", Version)
	router.HEAD("", Version)
	router.GET("/", Version)
	router.HEAD("/", Version)
}
