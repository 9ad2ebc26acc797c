// Package barcode serves the barcode documents: single symbols as SVG or
// PNG, and label sheets. The documents are kept in a cache.
package barcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cozy/cozy-barcode/pkg/cache"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/cozy/cozy-barcode/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Format is the format of a generated document.
type Format string

const (
	// FormatSVG is for the SVG documents, made by the ean13 generator.
	FormatSVG Format = "svg"
	// FormatPNG is for the SVG documents rasterized as PNG images.
	FormatPNG Format = "png"

	formatSheet = "sheet"
)

const (
	defaultCacheTTL    = 24 * time.Hour
	defaultRasterScale = 2
)

// ErrUnknownFormat is used when the format of a document is not supported.
var ErrUnknownFormat = errors.New("unknown barcode format")

// ParseFormat returns the format for the given file extension, with or
// without its leading dot. An empty extension is for SVG.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// ContentType returns the content-type to use for the documents in this
// format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Options are the settings of a [Service].
type Options struct {
	// CacheTTL is how long a generated document is kept in the cache.
	CacheTTL time.Duration
	// RasterScale is the number of pixels for an SVG user unit in the PNG
	// images.
	RasterScale float64
	// Defaults are used for the rendering parameters not given by the
	// caller.
	Defaults ean13.Params
}

// Service handle all the interactions with the barcode documents.
type Service struct {
	cache     cache.Cache
	generator *ean13.Generator
	opts      Options
	group     singleflight.Group
	log       *logger.Entry
}

// NewService instantiate a new [Service].
func NewService(cache cache.Cache, gen *ean13.Generator, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.RasterScale <= 0 {
		opts.RasterScale = defaultRasterScale
	}
	opts.Defaults = opts.Defaults.WithDefaults()
	return &Service{
		cache:     cache,
		generator: gen,
		opts:      opts,
		log:       logger.WithNamespace("barcode"),
	}
}

// Defaults returns the rendering parameters used when the caller gives
// none.
func (s *Service) Defaults() ean13.Params {
	return s.opts.Defaults
}

// CheckStatus checks that the cache of the documents can be used.
func (s *Service) CheckStatus(ctx context.Context) (time.Duration, error) {
	return s.cache.CheckStatus(ctx)
}

// EAN13 returns the document for the given code in the given format, and
// the content-type to use for the HTTP response.
func (s *Service) EAN13(code string, params ean13.Params, format Format) ([]byte, string, error) {
	if format != FormatSVG && format != FormatPNG {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	params = s.params(params)
	key := s.cacheKey(code, params, format)

	start := time.Now()
	if data, ok := s.cache.Get(key); ok {
		observe(string(format), metrics.ResultCached, start)
		return data, format.ContentType(), nil
	}

	res, err, _ := s.group.Do(key, func() (interface{}, error) {
		data, err := s.render(code, params, format)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, data, s.opts.CacheTTL)
		return data, nil
	})
	if err != nil {
		observe(string(format), metrics.ResultErrored, start)
		s.log.WithCode(code).Debugf("Cannot generate the %s document: %s", format, err)
		return nil, "", err
	}

	observe(string(format), metrics.ResultSuccess, start)
	return res.([]byte), format.ContentType(), nil
}

func (s *Service) render(code string, params ean13.Params, format Format) ([]byte, error) {
	svg, err := s.generator.Generate(code, params)
	if err != nil {
		return nil, err
	}
	if format == FormatSVG {
		return []byte(svg), nil
	}

	png, err := Rasterize([]byte(svg), s.opts.RasterScale)
	if err != nil {
		s.log.WithCode(code).Warnf("Cannot rasterize: %s", err)
		return nil, err
	}
	return png, nil
}

// params fills the missing parameters with the defaults of the service.
func (s *Service) params(p ean13.Params) ean13.Params {
	if p.BarWidth == 0 {
		p.BarWidth = s.opts.Defaults.BarWidth
	}
	if p.BarHeight == 0 {
		p.BarHeight = s.opts.Defaults.BarHeight
	}
	if p.BarColor == "" {
		p.BarColor = s.opts.Defaults.BarColor
	}
	return p
}

func (s *Service) cacheKey(code string, params ean13.Params, format Format) string {
	scale := ""
	if format == FormatPNG {
		scale = fmt.Sprintf("%g", s.opts.RasterScale)
	}
	return fmt.Sprintf("ean13:%s:%s:%g:%g:%s:%s",
		format, code, params.BarWidth, params.BarHeight, params.BarColor, scale)
}

func observe(format, result string, start time.Time) {
	metrics.BarcodeGenerations.WithLabelValues(format, result).Inc()
	metrics.BarcodeDurations.WithLabelValues(format, result).Observe(time.Since(start).Seconds())
}
