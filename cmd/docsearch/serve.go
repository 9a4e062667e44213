package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	dshttp "github.com/fwojciec/docsearch/http"
)

const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until deps.Ctx is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           dshttp.NewServer(deps.Site, deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	select {
	case err := <-errc:
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(deps.Ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
