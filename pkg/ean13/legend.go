package ean13

import (
	"strings"
	"unicode/utf8"
)

// FontFamily is the font used for the human readable digits.
const FontFamily = "Libre Barcode EAN13 Text"

const (
	legendBaseline = 90
	legendFontSize = 24
)

// The x offsets of the three groups of digits. They are tuned for the default
// bar width and are not scaled with it.
var legendOffsets = [3]int{0, 30, 122}

// SplitDisplayGroups splits a 13 chars code in the three groups printed
// under an EAN-13 symbol: the first digit, then two groups of 6 digits.
func SplitDisplayGroups(code string) (string, string, string, error) {
	if utf8.RuneCountInString(code) != Length {
		return "", "", "", &FormatError{Code: code}
	}
	runes := []rune(code)
	return string(runes[0:1]), string(runes[1:7]), string(runes[7:13]), nil
}

// RenderLegend returns the <g id="legend"> group with the digits of the code.
func RenderLegend(code string) (string, error) {
	var b strings.Builder
	if err := writeLegend(&b, code, "\t"); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeLegend(b *strings.Builder, code, indent string) error {
	start, centre, end, err := SplitDisplayGroups(code)
	if err != nil {
		return err
	}

	b.WriteString(indent)
	b.WriteString(`<g id="legend">` + "\n")
	b.WriteString(indent)
	b.WriteString("\t<text y=\"")
	b.WriteString(formatNumber(legendBaseline))
	b.WriteString(`" font-family="` + FontFamily + `" font-size="`)
	b.WriteString(formatNumber(legendFontSize))
	b.WriteString("\">\n")
	for i, group := range [3]string{start, centre, end} {
		b.WriteString(indent)
		b.WriteString("\t\t<tspan x=\"")
		b.WriteString(formatNumber(float64(legendOffsets[i])))
		b.WriteString(`">`)
		b.WriteString(descReplacer.Replace(group))
		b.WriteString("</tspan>\n")
	}
	b.WriteString(indent)
	b.WriteString("\t</text>\n")
	b.WriteString(indent)
	b.WriteString("</g>\n")
	return nil
}
