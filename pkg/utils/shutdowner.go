package utils

import (
	"context"
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Shutdowner is implemented by the long running parts of the server (HTTP
// servers, cache connections) that must be stopped before exiting.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc is an adapter to use a function as a [Shutdowner].
type ShutdownFunc func(ctx context.Context) error

// Shutdown calls f(ctx).
func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// CloserShutdown returns a [Shutdowner] for a resource that can only be
// closed, like a redis client. A nil closer is allowed and does nothing.
func CloserShutdown(c io.Closer) Shutdowner {
	return ShutdownFunc(func(ctx context.Context) error {
		if c == nil {
			return nil
		}
		return c.Close()
	})
}

// GroupShutdown stops several [Shutdowner] as one.
type GroupShutdown struct {
	s []Shutdowner
}

// NewGroupShutdown returns a new GroupShutdown
func NewGroupShutdown(s ...Shutdowner) *GroupShutdown {
	return &GroupShutdown{s}
}

// Add appends a [Shutdowner] to the group.
func (g *GroupShutdown) Add(s Shutdowner) {
	g.s = append(g.s, s)
}

// Shutdown stops all the members of the group in parallel, and returns their
// errors as a multierror.
func (g *GroupShutdown) Shutdown(ctx context.Context) error {
	var errm error
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, s := range g.s {
		wg.Add(1)
		go func(s Shutdowner) {
			defer wg.Done()
			if err := s.Shutdown(ctx); err != nil {
				mu.Lock()
				errm = multierror.Append(errm, err)
				mu.Unlock()
			}
		}(s)
	}

	wg.Wait()
	return errm
}
