package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxRasterPixels is the largest area, in pixels, of a PNG image.
const MaxRasterPixels = 1 << 24

var errEmptyImage = errors.New("the image has no area")

// Rasterize draws the SVG document on a transparent PNG image, with scale
// pixels for each user unit. The texts are not drawn.
func Rasterize(svg []byte, scale float64) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		// The only attribute given by the caller is the color
		return nil, fmt.Errorf("%w: cannot rasterize: %s", ean13.ErrInvalidParams, err)
	}

	fw := math.Ceil(icon.ViewBox.W * scale)
	fh := math.Ceil(icon.ViewBox.H * scale)
	if !(fw*fh <= MaxRasterPixels) {
		return nil, fmt.Errorf("%w: the image would be %gx%g pixels, the limit is %d pixels",
			ean13.ErrInvalidParams, fw, fh, MaxRasterPixels)
	}
	w, h := int(fw), int(fh)
	if w <= 0 || h <= 0 {
		return nil, errEmptyImage
	}
	icon.SetTarget(0, 0, icon.ViewBox.W*scale, icon.ViewBox.H*scale)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
