package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// installSignalHandler registers a SIGINT/SIGTERM handler that releases the
// export lock before exit. Returns a cleanup function to deregister the handler.
func installSignalHandler(release func()) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			fmt.Fprintln(os.Stderr, "\ninterrupted, releasing export lock...")
			release()
			os.Exit(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
