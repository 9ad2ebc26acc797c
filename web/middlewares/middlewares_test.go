package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheControl(t *testing.T) {
	e := echo.New()
	mw := CacheControl(CacheOptions{
		Public:    true,
		MaxAge:    365 * 24 * time.Hour,
		Immutable: true,
	})
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, mw)
	e.GET("/ko", func(c echo.Context) error {
		return c.String(http.StatusBadRequest, "KO")
	}, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get(echo.HeaderCacheControl))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ko", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderCacheControl))
}

func TestCacheControlModes(t *testing.T) {
	for _, test := range []struct {
		opts     CacheOptions
		expected string
	}{
		{CacheOptions{}, ""},
		{CacheOptions{Mode: NoCache, Public: true}, "public, no-cache"},
		{CacheOptions{Mode: NoStore, Private: true}, "private, no-store"},
		{CacheOptions{Private: true, MustRevalidate: true, MaxAge: time.Minute}, "private, must-revalidate, max-age=60"},
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := CacheControl(test.opts)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		assert.Equal(t, test.expected, rec.Header().Get(echo.HeaderCacheControl))
	}
}

func TestContentTypeJSON(t *testing.T) {
	h := ContentTypeJSON(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for ct, ok := range map[string]bool{
		"application/json":                  true,
		"application/json; charset=utf-8":   true,
		"":                                  false,
		"text/plain":                        false,
		"application/x-www-form-urlencoded": false,
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		if ct != "" {
			req.Header.Set(echo.HeaderContentType, ct)
		}
		rec := httptest.NewRecorder()
		err := h(e.NewContext(req, rec))
		if ok {
			assert.NoError(t, err, ct)
			assert.Equal(t, http.StatusNoContent, rec.Code)
			continue
		}
		var he *echo.HTTPError
		require.True(t, errors.As(err, &he), ct)
		assert.Equal(t, http.StatusUnsupportedMediaType, he.Code)
	}
}

func TestRecover(t *testing.T) {
	var handled error
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handled = err
		_ = c.NoContent(http.StatusInternalServerError)
	}
	e.Use(RecoverWithConfig(RecoverConfig{}))
	e.GET("/panic", func(c echo.Context) error {
		panic("oops")
	})
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var he *echo.HTTPError
	require.True(t, errors.As(handled, &he))
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	require.Error(t, he.Internal)
	assert.Equal(t, "oops", he.Internal.Error())

	handled = nil
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, handled)
}
