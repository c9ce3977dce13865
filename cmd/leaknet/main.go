// Command leaknet builds officer and company co-affiliation networks from a
// directory of leaked corporate-registry documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-leaknet/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.NewFromEnv().Error("leaknet failed", logging.Error(err))
		stop()
		os.Exit(1)
	}
}
