// cozy-barcode draws the EAN-13 barcodes of product codes. The documents are
// SVG files, or PNG images, and they can be made from the command line or
// served over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cozy/cozy-barcode/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error()) // #nosec
			os.Exit(1)
		}
	}
}
