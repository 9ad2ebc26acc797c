package cmd

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cozy/cozy-barcode/pkg/barcode"
	"github.com/cozy/cozy-barcode/pkg/config/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var flagColumns int
var flagSheetOutput string
var flagCodesFile string

var sheetCmd = &cobra.Command{
	Use:   "sheet [code]...",
	Short: "Draw a sheet of labels with several EAN-13 barcodes",
	Long: `Draw a sheet of labels, as a single SVG document, with a barcode for each code.

The codes can be given as arguments, separated by commas, or read from a file
with one code by line.
`,
	Example: `$ cozy-barcode sheet --columns 3 -o labels.svg 4006381333931,5901234123457
$ cozy-barcode sheet --from codes.txt > labels.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := splitCodes(args)
		if flagCodesFile != "" {
			fromFile, err := readCodes(appFs, flagCodesFile)
			if err != nil {
				return err
			}
			codes = append(codes, fromFile...)
		}
		if len(codes) == 0 {
			return cmd.Usage()
		}
		return writeSheet(appFs, cmd.OutOrStdout(), config.Barcodes(), codes, flagColumns, flagSheetOutput)
	},
}

// writeSheet writes the sheet for the codes in the given file, or to out if
// filename is empty.
func writeSheet(fs afero.Fs, out io.Writer, svc *barcode.Service, codes []string, columns int, filename string) error {
	data, err := svc.Sheet(codes, renderParams(), columns)
	if err != nil {
		return err
	}
	if filename == "" {
		_, err = out.Write(data)
		return err
	}
	return afero.WriteFile(fs, filename, data, 0644)
}

// readCodes returns the codes of a file, one by line. The empty lines are
// ignored.
func readCodes(fs afero.Fs, filename string) ([]string, error) {
	content, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}
	var codes []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		codes = append(codes, splitCodes([]string{scanner.Text()})...)
	}
	return codes, scanner.Err()
}

func init() {
	flags := sheetCmd.Flags()
	flags.IntVar(&flagColumns, "columns", 1, "number of barcodes on a row")
	flags.StringVarP(&flagSheetOutput, "output", "o", "", "file where the sheet is written")
	flags.StringVar(&flagCodesFile, "from", "", "file with the codes, one by line")
	addRenderFlags(sheetCmd)

	RootCmd.AddCommand(sheetCmd)
}
