package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/pkg/metrics"
	"github.com/hashicorp/go-multierror"
)

// MaxSheetCodes is the maximal number of symbols on a sheet.
const MaxSheetCodes = 100

// sheetGutter is the space between two cells of a sheet.
const sheetGutter = 10

var (
	// ErrEmptySheet is used when a sheet is asked without codes.
	ErrEmptySheet = errors.New("a sheet needs at least one code")
	// ErrSheetTooLarge is used when a sheet is asked with too many codes.
	ErrSheetTooLarge = fmt.Errorf("a sheet can't have more than %d codes", MaxSheetCodes)
)

// Sheet returns an SVG document with the symbols of all the codes, on a grid
// with the given number of columns. If some codes can't be drawn, the errors
// for all of them are returned and there is no document.
func (s *Service) Sheet(codes []string, params ean13.Params, columns int) ([]byte, error) {
	start := time.Now()
	data, err := s.sheet(codes, params, columns)
	if err != nil {
		observe(formatSheet, metrics.ResultErrored, start)
		return nil, err
	}
	observe(formatSheet, metrics.ResultSuccess, start)
	return data, nil
}

func (s *Service) sheet(codes []string, params ean13.Params, columns int) ([]byte, error) {
	if len(codes) == 0 {
		return nil, ErrEmptySheet
	}
	if len(codes) > MaxSheetCodes {
		return nil, ErrSheetTooLarge
	}
	if columns <= 0 {
		columns = 1
	}
	if columns > len(codes) {
		columns = len(codes)
	}
	params = s.params(params)
	if err := params.Check(); err != nil {
		return nil, err
	}

	var errm error
	symbols := make([]*ean13.Symbol, 0, len(codes))
	for _, code := range codes {
		sym, err := s.generator.Symbol(code, params, "\t\t")
		if err != nil {
			errm = multierror.Append(errm, err)
			continue
		}
		symbols = append(symbols, sym)
	}
	if errm != nil {
		return nil, errm
	}

	// All the symbols have the same size as they share the parameters
	cellWidth, cellHeight := symbols[0].Width, symbols[0].Height
	rows := (len(symbols) + columns - 1) / columns
	width := float64(columns)*cellWidth + float64(columns-1)*sheetGutter
	height := float64(rows)*cellHeight + float64(rows-1)*sheetGutter

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startraw(
		`width="`+formatFloat(width)+`"`,
		`height="`+formatFloat(height)+`"`,
	)
	canvas.Desc(fmt.Sprintf("%d EAN13 codes", len(symbols)))
	for i, sym := range symbols {
		x := float64(i%columns) * (cellWidth + sheetGutter)
		y := float64(i/columns) * (cellHeight + sheetGutter)
		canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", formatFloat(x), formatFloat(y)))
		canvas.Desc(sym.Code)
		fmt.Fprint(canvas.Writer, sym.Bars, sym.Legend)
		canvas.Gend()
	}
	canvas.End()
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
