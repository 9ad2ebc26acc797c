package ean13

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// barsXOffset is the left margin kept free for the first legend digit.
	barsXOffset = 16
	// legendMargin is the room kept under the bars for the legend baseline.
	legendMargin = 20
	// guardExtension is added to the height of the guard bars.
	guardExtension = 10
)

const (
	svgProlog  = `<?xml version="1.0" standalone="no"?>` + "\n"
	svgDoctype = `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n"
	svgEnd     = "</svg>\n"
)

// guardRanges are the indexes (inclusive) of the start, centre and end guard
// patterns in the descriptors of a standard symbol.
var guardRanges = [3][2]int{
	{0, 2},
	{28, 30},
	{56, 58},
}

var descReplacer = strings.NewReplacer(
	"\x00", "",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Bar is a single unit of the symbol geometry, as produced by the encoder.
// The sizes are relative: they are multiplied by the rendering parameters.
type Bar struct {
	Width  float64
	Height float64
	// Offset is the vertical position of the bar from the top of the symbol.
	Offset float64
	// IsBar is false for the slots that are only spacing.
	IsBar bool
}

// BarArray is the ordered list of bars of a symbol, with the metadata
// needed to size the drawing.
type BarArray struct {
	Bars []Bar
	// MaxWidth is the sum of the bar widths.
	MaxWidth float64
	// MaxHeight is the divisor used to normalize heights and offsets.
	MaxHeight float64
	// Code is an echo of the encoded code. It is not used for the layout.
	Code string
}

func isGuard(k int) bool {
	for _, r := range guardRanges {
		if k >= r[0] && k <= r[1] {
			return true
		}
	}
	return false
}

// CanvasWidth returns the width of the SVG document for a symbol of
// maxWidth units drawn with bars of barWidth.
func CanvasWidth(maxWidth, barWidth float64) float64 {
	return round(maxWidth*barWidth + barsXOffset)
}

// CanvasHeight returns the height of the SVG document for bars of
// barHeight.
func CanvasHeight(barHeight float64) float64 {
	return barHeight + legendMargin
}

// RenderBars returns the beginning of the SVG document for the given bars:
// the prolog, the opening <svg> tag, the <desc> element with the code and
// the group of bars. The <svg> element is left open for the legend.
func RenderBars(arr *BarArray, params Params) string {
	params = params.WithDefaults()
	var b strings.Builder
	writeHeader(&b, arr, params)
	writeBars(&b, arr, params, "\t")
	return b.String()
}

func writeHeader(b *strings.Builder, arr *BarArray, params Params) {
	b.WriteString(svgProlog)
	b.WriteString(svgDoctype)
	b.WriteString(`<svg width="`)
	b.WriteString(formatNumber(CanvasWidth(arr.MaxWidth, params.BarWidth)))
	b.WriteString(`" height="`)
	b.WriteString(formatNumber(CanvasHeight(params.BarHeight)))
	b.WriteString(`" version="1.1" xmlns="http://www.w3.org/2000/svg">` + "\n")
	b.WriteString("\t<desc>")
	b.WriteString(descReplacer.Replace(arr.Code))
	b.WriteString("</desc>\n")
}

func writeBars(b *strings.Builder, arr *BarArray, params Params, indent string) {
	b.WriteString(indent)
	b.WriteString(`<g id="bars" fill="`)
	b.WriteString(params.BarColor)
	b.WriteString(`" stroke="none">` + "\n")

	x := float64(barsXOffset)
	for k, bar := range arr.Bars {
		bw := round(bar.Width * params.BarWidth)
		bh := bar.Height * params.BarHeight / arr.MaxHeight
		if isGuard(k) {
			bh += guardExtension
		}
		bh = round(bh)
		if bar.IsBar {
			y := round(bar.Offset * params.BarHeight / arr.MaxHeight)
			b.WriteString(indent)
			b.WriteString("\t<rect x=\"")
			b.WriteString(formatNumber(x))
			b.WriteString(`" y="`)
			b.WriteString(formatNumber(y))
			b.WriteString(`" width="`)
			b.WriteString(formatNumber(bw))
			b.WriteString(`" height="`)
			b.WriteString(formatNumber(bh))
			b.WriteString("\" />\n")
		}
		x += bw
	}

	b.WriteString(indent)
	b.WriteString("</g>\n")
}

// round rounds half away from zero to 3 decimal places. The value is first
// reduced to 15 significant digits so that 1.0005 is rounded to 1.001 even
// if its binary representation is slightly below.
func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'e', 14, 64))
	if !ok {
		return math.Round(v*1000) / 1000
	}
	r.Mul(r, big.NewRat(1000, 1))

	num := new(big.Int).Abs(r.Num())
	quo, rem := new(big.Int).QuoRem(num, r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if r.Sign() < 0 {
		quo.Neg(quo)
	}
	f, _ := new(big.Rat).SetFrac(quo, big.NewInt(1000)).Float64()
	return f
}

// formatNumber prints a number with at most 14 significant digits and no
// trailing zeros: 206, 2.5, 0.001.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 14, 64)
}
