package ean13_test

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/cozy/cozy-barcode/pkg/barcode/symbology"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEncoder returns 59 bars of width 1 whatever the code is, like an
// encoder that does not check the check digit.
func fixedEncoder(calls *int) ean13.EncoderFunc {
	return func(code string) (*ean13.BarArray, error) {
		if calls != nil {
			*calls++
		}
		arr := &ean13.BarArray{MaxHeight: 1, Code: code}
		for i := 0; i < 59; i++ {
			arr.Bars = append(arr.Bars, ean13.Bar{Width: 1, Height: 1, IsBar: i%2 == 0})
			arr.MaxWidth++
		}
		return arr, nil
	}
}

func TestValidate(t *testing.T) {
	for _, code := range []string{
		"4006381333931",
		"1234567890128",
		"0000000000000",
		// The check digit is wrong but it is not verified
		"4006381333932",
	} {
		assert.True(t, ean13.Validate(code), "code %q", code)
	}

	for _, code := range []string{
		"",
		"400638133393",
		"40063813339310",
		" 4006381333931",
		"4006381333931 ",
		"+006381333931",
		"-006381333931",
		"40063813339a1",
		"4006381333931\n",
		"４００６３８１３３３９３", // fullwidth digits
	} {
		assert.False(t, ean13.Validate(code), "code %q", code)
	}
}

func TestGenerate(t *testing.T) {
	t.Run("Golden", func(t *testing.T) {
		gen := ean13.NewGenerator(symbology.NewEAN13())
		for _, test := range []struct {
			testname, filename, code string
			params                   ean13.Params
		}{
			{"Default", "./testdata/4006381333931.svg", "4006381333931", ean13.Params{}},
			{"DefaultExplicit", "./testdata/4006381333931.svg", "4006381333931", ean13.DefaultParams()},
			{"Custom", "./testdata/4006381333931-w3-h50.svg", "4006381333931", ean13.Params{BarWidth: 3, BarHeight: 50, BarColor: "#336699"}},
		} {
			t.Run(test.testname, func(t *testing.T) {
				svg, err := gen.Generate(test.code, test.params)
				require.NoError(t, err)

				rawExpected, err := os.ReadFile(test.filename)
				require.NoError(t, err)

				require.Equal(t, string(rawExpected), svg, "images don't have the same data")
			})
		}
	})

	t.Run("Legend", func(t *testing.T) {
		gen := ean13.NewGenerator(symbology.NewEAN13())
		svg, err := gen.Generate("4006381333931", ean13.Params{})
		require.NoError(t, err)

		legend := svg[strings.Index(svg, `<g id="legend">`):]
		assert.Contains(t, legend, `<tspan x="0">4</tspan>`)
		assert.Contains(t, legend, `<tspan x="30">006381</tspan>`)
		assert.Contains(t, legend, `<tspan x="122">333931</tspan>`)
	})

	t.Run("WellFormedXML", func(t *testing.T) {
		gen := ean13.NewGenerator(symbology.NewEAN13())
		svg, err := gen.Generate("1234567890128", ean13.Params{BarColor: "rgb(10, 20, 30)"})
		require.NoError(t, err)

		var elements []string
		dec := xml.NewDecoder(strings.NewReader(svg))
		for {
			tok, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			if start, ok := tok.(xml.StartElement); ok {
				elements = append(elements, start.Name.Local)
			}
		}
		require.NotEmpty(t, elements)
		assert.Equal(t, "svg", elements[0])
		assert.Equal(t, 1, strings.Count(svg, "<svg"))
		assert.Equal(t, 1, strings.Count(svg, "</svg>"))
	})

	t.Run("ChecksumIsNotVerified", func(t *testing.T) {
		calls := 0
		gen := ean13.NewGenerator(fixedEncoder(&calls))
		svg, err := gen.Generate("4006381333932", ean13.Params{})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Contains(t, svg, "<desc>4006381333932</desc>")
		assert.Equal(t, 1, strings.Count(svg, "<svg"))
		assert.Equal(t, 1, strings.Count(svg, "</svg>"))
	})

	t.Run("InvalidCode", func(t *testing.T) {
		calls := 0
		gen := ean13.NewGenerator(fixedEncoder(&calls))
		for _, code := range []string{"", "123", "12345678901234", "40063813339a1"} {
			svg, err := gen.Generate(code, ean13.Params{})
			assert.Empty(t, svg)
			var verr *ean13.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, code, verr.Code)
			}
		}
		assert.Equal(t, 0, calls, "the encoder should not have been called")
	})

	t.Run("EncodingError", func(t *testing.T) {
		gen := ean13.NewGenerator(symbology.NewEAN13())
		svg, err := gen.Generate("4006381333932", ean13.Params{})
		assert.Empty(t, svg)
		var eerr *ean13.EncodingError
		require.True(t, errors.As(err, &eerr))
		assert.Equal(t, "4006381333932", eerr.Code)
		assert.EqualError(t, eerr.Unwrap(), "checksum missmatch")
		assert.EqualError(t, err, `unable to encode EAN13 code "4006381333932", probably invalid: checksum missmatch`)
	})

	t.Run("EncoderReturnsNothing", func(t *testing.T) {
		gen := ean13.NewGenerator(ean13.EncoderFunc(func(string) (*ean13.BarArray, error) {
			return nil, nil
		}))
		_, err := gen.Generate("4006381333931", ean13.Params{})
		var eerr *ean13.EncodingError
		assert.True(t, errors.As(err, &eerr))
	})

	t.Run("InvalidParams", func(t *testing.T) {
		gen := ean13.NewGenerator(fixedEncoder(nil))
		for _, params := range []ean13.Params{
			{BarWidth: -1},
			{BarHeight: -70},
			{BarWidth: math.NaN()},
			{BarHeight: math.NaN()},
			{BarWidth: math.Inf(1)},
			{BarHeight: math.Inf(-1)},
			{BarWidth: ean13.MaxBarSize * 2},
			{BarColor: `black" onload="alert(1)`},
			{BarColor: "<red>"},
		} {
			_, err := gen.Generate("4006381333931", params)
			assert.ErrorIs(t, err, ean13.ErrInvalidParams)
		}
	})

	t.Run("EscapedEcho", func(t *testing.T) {
		gen := ean13.NewGenerator(ean13.EncoderFunc(func(code string) (*ean13.BarArray, error) {
			arr, _ := fixedEncoder(nil)(code)
			arr.Code = "40063&81333931"
			return arr, nil
		}))
		svg, err := gen.Generate("4006381333931", ean13.Params{})
		require.NoError(t, err)
		assert.Contains(t, svg, "<desc>40063&amp;81333931</desc>")
	})

	t.Run("Idempotent", func(t *testing.T) {
		gen := ean13.NewGenerator(symbology.NewEAN13())
		first, err := gen.Generate("4006381333931", ean13.Params{BarWidth: 1.5})
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = gen.Generate("4006381333931", ean13.Params{BarWidth: 1.5})
			}(i)
		}
		wg.Wait()
		for _, res := range results {
			assert.Equal(t, first, res)
		}
	})
}

func TestSymbol(t *testing.T) {
	gen := ean13.NewGenerator(symbology.NewEAN13())
	sym, err := gen.Symbol("4006381333931", ean13.Params{}, "\t\t")
	require.NoError(t, err)

	assert.Equal(t, "4006381333931", sym.Code)
	assert.Equal(t, 206.0, sym.Width)
	assert.Equal(t, 90.0, sym.Height)
	assert.True(t, strings.HasPrefix(sym.Bars, "\t\t<g id=\"bars\""))
	assert.Contains(t, sym.Bars, "\t\t\t<rect x=\"16\" y=\"0\" width=\"2\" height=\"80\" />\n")
	assert.True(t, strings.HasPrefix(sym.Legend, "\t\t<g id=\"legend\">"))

	// Same content as the full document, with another indentation
	svg, err := gen.Generate("4006381333931", ean13.Params{})
	require.NoError(t, err)
	assert.Equal(t, strings.Count(svg, "<rect"), strings.Count(sym.Bars, "<rect"))

	_, err = gen.Symbol("nope", ean13.Params{}, "")
	var verr *ean13.ValidationError
	assert.True(t, errors.As(err, &verr))
}
