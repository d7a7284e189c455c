package serviceutil

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until Ctrl+C is pressed or the
// process is asked to terminate.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Fatal prints the error and exits the process with status 1.
func Fatal(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err.Error())
	os.Exit(1)
}
