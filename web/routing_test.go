package web

import (
	"net/http/httptest"
	"testing"

	"github.com/cozy/cozy-barcode/pkg/config/config"
	"github.com/cozy/cozy-barcode/tests/testutils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRouting(t *testing.T) {
	config.UseTestFile(t)

	router := echo.New()
	err := SetupRoutes(router, config.Barcodes())
	require.NoError(t, err)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	t.Run("Version", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		e.GET("/version").Expect().Status(200)
	})

	t.Run("Status", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		e.GET("/status").
			Expect().Status(200).
			JSON().Object().
			Value("status").String().IsEqual("OK")
	})

	t.Run("Barcode", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		e.GET("/barcodes/ean13/4006381333931.svg").
			WithHeader("Origin", "shop.local").
			Expect().Status(200).
			Header("Access-Control-Allow-Origin").IsEqual("shop.local")
	})

	t.Run("InvalidBarcode", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		obj := e.GET("/barcodes/ean13/12345").
			Expect().Status(400).
			JSON().Object()
		obj.Value("title").String().IsEqual("Invalid code")
		obj.Value("detail").String().IsEqual(`invalid EAN13 code "12345"`)
	})

	t.Run("Metrics", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		e.GET("/metrics").
			WithHeader("Origin", "shop.local").
			Expect().Status(200).
			Body().Contains("barcodes_generation_count")
	})

	t.Run("NotFound", func(t *testing.T) {
		e := testutils.CreateTestClient(t, ts.URL)

		e.GET("/nowhere").Expect().Status(404)
	})
}
