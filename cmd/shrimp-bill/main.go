// Command shrimp-bill manages farms, the asset catalog and bills for a
// shrimp farm operation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
