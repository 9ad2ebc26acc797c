package ean13

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when the rendering parameters can not be used
// to draw a symbol (negative sizes, markup in the color).
var ErrInvalidParams = errors.New("invalid rendering parameters")

// ValidationError is returned when the code is not made of exactly 13
// decimal digits. Nothing has been encoded when it is returned.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid EAN13 code %q", e.Code)
}

// EncodingError is returned when the symbology encoder has rejected a code
// that has the right shape, for example because of a wrong check digit.
type EncodingError struct {
	Code string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("unable to encode EAN13 code %q, probably invalid: %s", e.Code, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the legend is asked for a string that is not
// 13 characters long.
type FormatError struct {
	Code string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("the code %q must be %d chars long", e.Code, Length)
}
