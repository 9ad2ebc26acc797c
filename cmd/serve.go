package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/pkg/config/config"
	"github.com/cozy/cozy-barcode/pkg/utils"
	"github.com/cozy/cozy-barcode/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var flagAllowRoot bool
var flagDevMode bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the server and listens for HTTP calls",
	Long: `Starts the server and listens for HTTP calls
It will accept HTTP requests on localhost:8080 by default.
Use the --port and --host flags to change the listening option.

The SIGINT and SIGTERM signals trigger a graceful stop: the current HTTP
requests are finished (in a limit of 30 seconds) before exiting.
`,
	Example: `$ cozy-barcode serve
$ curl http://localhost:8080/barcodes/ean13/4006381333931.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagAllowRoot && os.Getuid() == 0 {
			errPrintfln("Use --allow-root if you really want to start with the root user")
			return errors.New("Starting cozy-barcode serve as root not allowed")
		}

		if flagDevMode {
			build.BuildMode = build.ModeDev
		}

		servers, err := web.ListenAndServe()
		if err != nil {
			return err
		}

		fmt.Println("Ready and waiting for connections:")
		servers.Start()

		group := utils.NewGroupShutdown(servers)
		group.Add(utils.CloserShutdown(config.GetConfig().Redis))

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-servers.Wait():
			return err
		case <-sigs:
			fmt.Println("\nReceived interrupt signal:")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := group.Shutdown(ctx); err != nil {
				return err
			}
			fmt.Println("All settled, bye bye !")
			return nil
		}
	},
}

func init() {
	flags := serveCmd.PersistentFlags()
	flags.BoolVar(&flagAllowRoot, "allow-root", false, "Allow to start as root (disabled by default)")
	flags.BoolVar(&flagDevMode, "dev", false, "Allow to run in dev mode for a prod release (disabled by default)")

	RootCmd.AddCommand(serveCmd)
}
