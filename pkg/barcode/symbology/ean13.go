// Package symbology adapts the boombuler barcode encoders to the bars
// expected by the SVG renderer.
package symbology

import (
	"fmt"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"github.com/cozy/cozy-barcode/pkg/ean13"
)

// EAN13 is an [ean13.Encoder] backed by the boombuler EAN encoder. The check
// digit is verified by the encoder.
type EAN13 struct{}

// NewEAN13 instantiates a new [EAN13] encoder.
func NewEAN13() *EAN13 {
	return &EAN13{}
}

// Encode implements [ean13.Encoder].
func (e *EAN13) Encode(code string) (*ean13.BarArray, error) {
	bc, err := ean.Encode(code)
	if err != nil {
		return nil, err
	}
	if kind := bc.Metadata().CodeKind; kind != barcode.TypeEAN13 {
		return nil, fmt.Errorf("unexpected barcode kind %q", kind)
	}
	return FromModules(bc), nil
}

// FromModules converts a 1D barcode into bars: each run of modules of the
// same color is a bar (or a space) whose width is the length of the run. All
// the bars have a relative height of 1.
func FromModules(bc barcode.Barcode) *ean13.BarArray {
	bounds := bc.Bounds()
	arr := &ean13.BarArray{
		MaxHeight: 1,
		Code:      bc.Content(),
	}

	run := 0
	dark := false
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		d := isDark(bc, x, bounds.Min.Y)
		if run > 0 && d != dark {
			arr.Bars = append(arr.Bars, ean13.Bar{Width: float64(run), Height: 1, IsBar: dark})
			run = 0
		}
		dark = d
		run++
	}
	if run > 0 {
		arr.Bars = append(arr.Bars, ean13.Bar{Width: float64(run), Height: 1, IsBar: dark})
	}

	arr.MaxWidth = float64(bounds.Dx())
	return arr
}

func isDark(bc barcode.Barcode, x, y int) bool {
	r, g, b, _ := bc.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}
