// Package ean13 draws EAN-13 symbols as SVG documents.
//
// The symbology itself (which bars make which digit) is delegated to an
// Encoder. This package validates the code, turns the bars given by the
// encoder into <rect> elements and prints the digits under them.
package ean13

import (
	"errors"
	"strings"
)

var errNoBars = errors.New("the encoder returned no bars")

// Encoder turns a 13 digits code into the bars of the symbol.
type Encoder interface {
	Encode(code string) (*BarArray, error)
}

// EncoderFunc is an adapter to use an ordinary function as an Encoder.
type EncoderFunc func(code string) (*BarArray, error)

// Encode calls f(code).
func (f EncoderFunc) Encode(code string) (*BarArray, error) {
	return f(code)
}

// Generator creates the SVG documents. It has no state of its own and can be
// used concurrently if its encoder can.
type Generator struct {
	encoder Encoder
}

// NewGenerator instantiates a new [Generator].
func NewGenerator(encoder Encoder) *Generator {
	return &Generator{encoder: encoder}
}

// Symbol is a drawn symbol that has not been wrapped in a document yet. It
// is used to place several symbols in the same document.
type Symbol struct {
	Code   string
	Width  float64
	Height float64
	// Bars is the <g id="bars"> group.
	Bars string
	// Legend is the <g id="legend"> group.
	Legend string
}

// Generate returns the SVG document for the given code.
func (g *Generator) Generate(code string, params Params) (string, error) {
	arr, params, err := g.encode(code, params)
	if err != nil {
		return "", err
	}

	legend, err := RenderLegend(code)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(RenderBars(arr, params))
	b.WriteString(legend)
	b.WriteString(svgEnd)
	return b.String(), nil
}

// Symbol returns the groups of the symbol for the given code, with the size
// of the area they need. indent is put in front of every line.
func (g *Generator) Symbol(code string, params Params, indent string) (*Symbol, error) {
	arr, params, err := g.encode(code, params)
	if err != nil {
		return nil, err
	}

	var bars, legend strings.Builder
	writeBars(&bars, arr, params, indent)
	if err := writeLegend(&legend, code, indent); err != nil {
		return nil, err
	}

	return &Symbol{
		Code:   code,
		Width:  CanvasWidth(arr.MaxWidth, params.BarWidth),
		Height: CanvasHeight(params.BarHeight),
		Bars:   bars.String(),
		Legend: legend.String(),
	}, nil
}

func (g *Generator) encode(code string, params Params) (*BarArray, Params, error) {
	if !Validate(code) {
		return nil, params, &ValidationError{Code: code}
	}
	params = params.WithDefaults()
	if err := params.Check(); err != nil {
		return nil, params, err
	}

	arr, err := g.encoder.Encode(code)
	if err != nil {
		return nil, params, &EncodingError{Code: code, Err: err}
	}
	if arr == nil {
		return nil, params, &EncodingError{Code: code, Err: errNoBars}
	}
	return arr, params, nil
}
