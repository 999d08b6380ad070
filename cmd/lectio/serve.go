package main

import (
	"context"
	"fmt"

	lececho "github.com/fwojciec/lectio/echo"
)

// Run executes the serve command. It blocks until the context is canceled
// or the listener fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := lececho.NewServer(deps.Service, deps.Logger)

	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe(c.Addr) }()
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		}
		return err
	case <-deps.Ctx.Done():
	}

	if err := server.Close(context.Background()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return <-errc
}
