// Package web is the HTTP API of cozy-barcode.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/pkg/config/config"
	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/labstack/echo/v4"
)

const devBanner = `                           !! DEVELOPMENT RELEASE !!
You are running a development release: the errors are logged with their
details and the panics are not recovered. Do not use this binary in production.

`

// Servers contains the started HTTP servers.
type Servers struct {
	main *echo.Echo
	errs chan error
}

// ListenAndServe creates and setups all the necessary http endpoints. The
// servers are started with [Servers.Start].
func ListenAndServe() (*Servers, error) {
	main := echo.New()
	main.HideBanner = true
	main.HidePort = true
	if err := SetupRoutes(main, config.Barcodes()); err != nil {
		return nil, err
	}

	if build.IsDevRelease() {
		fmt.Print(devBanner)
	}

	return &Servers{main: main, errs: make(chan error, 1)}, nil
}

// Start starts the servers in background.
func (s *Servers) Start() {
	addr := config.ServerAddr()
	logger.WithNamespace("http").Infof("Listening on %s", addr)
	go func() {
		err := s.main.Start(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.errs <- err
	}()
}

// Wait returns a channel where the error of a server is sent when it stops.
func (s *Servers) Wait() <-chan error {
	return s.errs
}

// Shutdown gracefully stops the servers.
func (s *Servers) Shutdown(ctx context.Context) error {
	if err := s.main.Shutdown(ctx); err != nil {
		return err
	}
	fmt.Println("    shutdown server: ok")
	return nil
}
