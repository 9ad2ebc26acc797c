package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cozy/cozy-barcode/pkg/barcode"
	"github.com/cozy/cozy-barcode/pkg/config/config"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/pkg/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelRenders is the number of documents drawn at the same time by
// the ean13 command.
const maxParallelRenders = 4

var appFs = afero.NewOsFs()

var flagOutput string
var flagPNG bool
var flagBarWidth float64
var flagBarHeight float64
var flagBarColor string

var ean13Cmd = &cobra.Command{
	Use:   "ean13 <code>...",
	Short: "Draw the barcode of EAN-13 codes",
	Long: `Draw the barcode of EAN-13 codes.

The codes can be given as several arguments, or separated by commas. With a
single code, the document is written on the standard output, unless the
--output flag is used. With several codes, the --output flag is required and
one file per code is written in this directory.
`,
	Example: `$ cozy-barcode ean13 4006381333931 > barcode.svg
$ cozy-barcode ean13 --png -o labels 4006381333931,5901234123457`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := splitCodes(args)
		if len(codes) == 0 {
			return cmd.Usage()
		}
		format := barcode.FormatSVG
		if flagPNG {
			format = barcode.FormatPNG
		}
		return renderCodes(cmd.Context(), appFs, cmd.OutOrStdout(), config.Barcodes(), renderOptions{
			Codes:  codes,
			Dir:    flagOutput,
			Format: format,
			Params: renderParams(),
		})
	},
}

type renderOptions struct {
	Codes  []string
	Dir    string
	Format barcode.Format
	Params ean13.Params
}

// renderCodes writes the documents for the codes, to out when there is
// only one code and no directory, or to one file per code in the directory.
func renderCodes(ctx context.Context, fs afero.Fs, out io.Writer, svc *barcode.Service, opts renderOptions) error {
	if opts.Dir == "" {
		if len(opts.Codes) > 1 {
			return errors.New("an output directory is required for several codes")
		}
		data, _, err := svc.EAN13(opts.Codes[0], opts.Params, opts.Format)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if err := fs.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", opts.Dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for _, code := range opts.Codes {
		code := code
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, _, err := svc.EAN13(code, opts.Params, opts.Format)
			if err != nil {
				return err
			}
			filename := filepath.Join(opts.Dir, code+"."+string(opts.Format))
			return afero.WriteFile(fs, filename, data, 0644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d barcodes written in %s\n", len(opts.Codes), opts.Dir)
	return nil
}

func splitCodes(args []string) []string {
	var codes []string
	for _, arg := range args {
		codes = append(codes, utils.SplitTrimString(arg, ",")...)
	}
	return codes
}

func renderParams() ean13.Params {
	return ean13.Params{
		BarWidth:  flagBarWidth,
		BarHeight: flagBarHeight,
		BarColor:  flagBarColor,
	}
}

func addRenderFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&flagBarWidth, "bar-width", 0, "width of a module, in user units (default from the config)")
	flags.Float64Var(&flagBarHeight, "bar-height", 0, "height of the bars, in user units (default from the config)")
	flags.StringVar(&flagBarColor, "color", "", "color of the bars and of the legend (default from the config)")
}

func init() {
	flags := ean13Cmd.Flags()
	flags.StringVarP(&flagOutput, "output", "o", "", "directory where the documents are written")
	flags.BoolVar(&flagPNG, "png", false, "write PNG images instead of SVG documents")
	addRenderFlags(ean13Cmd)

	RootCmd.AddCommand(ean13Cmd)
}
