// Package barcodes is for the routes that draw the barcodes.
package barcodes

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/cozy/cozy-barcode/pkg/barcode"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/web/middlewares"
	"github.com/labstack/echo/v4"
)

// The document for a code and its parameters never changes.
const maxAge = 365 * 24 * time.Hour

// HTTPHandler handle all the barcodes routes.
type HTTPHandler struct {
	svc *barcode.Service
}

// NewHTTPHandler instantiates a new [HTTPHandler].
func NewHTTPHandler(svc *barcode.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// sheetRequest is the JSON body for a sheet.
type sheetRequest struct {
	Codes   []string `json:"codes"`
	Columns int      `json:"columns"`
	ean13.Params
}

// EAN13 responds with the symbol for the code in the URL. The code can have
// a .svg or .png extension, SVG is the default.
func (h *HTTPHandler) EAN13(c echo.Context) error {
	code := c.Param("code")
	ext := path.Ext(code)
	format, err := barcode.ParseFormat(ext)
	if err != nil {
		return err
	}
	code = strings.TrimSuffix(code, ext)

	params, err := queryParams(c)
	if err != nil {
		return err
	}

	data, contentType, err := h.svc.EAN13(code, params, format)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// Sheet responds with an SVG document with the symbols of several codes.
func (h *HTTPHandler) Sheet(c echo.Context) error {
	var req sheetRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	data, err := h.svc.Sheet(req.Codes, req.Params, req.Columns)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, barcode.FormatSVG.ContentType(), data)
}

func queryParams(c echo.Context) (ean13.Params, error) {
	var params ean13.Params
	err := echo.QueryParamsBinder(c).
		Float64("width", &params.BarWidth).
		Float64("height", &params.BarHeight).
		String("color", &params.BarColor).
		BindError()
	var berr *echo.BindingError
	if errors.As(err, &berr) {
		return params, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("invalid value for the %s parameter", berr.Field))
	}
	return params, err
}

// Register sets the routing for the barcodes service
func (h *HTTPHandler) Register(router *echo.Group) {
	cacheControl := middlewares.CacheControl(middlewares.CacheOptions{
		Public:    true,
		MaxAge:    maxAge,
		Immutable: true,
	})

	router.POST("/ean13/sheet", h.Sheet, middlewares.ContentTypeJSON)
	router.GET("/ean13/:code", h.EAN13, cacheControl)
	router.HEAD("/ean13/:code", h.EAN13, cacheControl)
}
