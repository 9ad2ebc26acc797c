package ean13

import (
	"fmt"
	"strings"
)

// Default values for the rendering parameters.
const (
	DefaultBarWidth  = 2
	DefaultBarHeight = 70
	DefaultBarColor  = "black"
)

// MaxBarSize is the largest width or height, in user units, accepted for
// the bars.
const MaxBarSize = 1e6

// Params are the drawing parameters of a symbol. A zero field means that the
// default value is used.
type Params struct {
	// BarWidth is the width, in user units, of the thinnest bar.
	BarWidth float64 `json:"width,omitempty" mapstructure:"bar_width"`
	// BarHeight is the height, in user units, of the data bars.
	BarHeight float64 `json:"height,omitempty" mapstructure:"bar_height"`
	// BarColor is the SVG paint used for the bars. The background is
	// transparent.
	BarColor string `json:"color,omitempty" mapstructure:"bar_color"`
}

// DefaultParams returns the parameters used when nothing is specified.
func DefaultParams() Params {
	return Params{
		BarWidth:  DefaultBarWidth,
		BarHeight: DefaultBarHeight,
		BarColor:  DefaultBarColor,
	}
}

// WithDefaults returns a copy of the parameters where the zero values have
// been replaced by the defaults.
func (p Params) WithDefaults() Params {
	if p.BarWidth == 0 {
		p.BarWidth = DefaultBarWidth
	}
	if p.BarHeight == 0 {
		p.BarHeight = DefaultBarHeight
	}
	if p.BarColor == "" {
		p.BarColor = DefaultBarColor
	}
	return p
}

// Check returns an error wrapping ErrInvalidParams if the parameters can't
// be used for drawing. A zero size is accepted, it is replaced by the
// default when drawing.
func (p Params) Check() error {
	if !validSize(p.BarWidth) {
		return fmt.Errorf("%w: bar width must be positive and at most %g, was %v", ErrInvalidParams, MaxBarSize, p.BarWidth)
	}
	if !validSize(p.BarHeight) {
		return fmt.Errorf("%w: bar height must be positive and at most %g, was %v", ErrInvalidParams, MaxBarSize, p.BarHeight)
	}
	if strings.ContainsAny(p.BarColor, "\"'<>&") {
		return fmt.Errorf("%w: bar color %q", ErrInvalidParams, p.BarColor)
	}
	return nil
}

// validSize rejects the negative, NaN and infinite sizes.
func validSize(v float64) bool {
	if v == 0 {
		return true
	}
	return v > 0 && v <= MaxBarSize
}
