// Command asset-editor edits the Asset.txt price list used to seed the
// catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewAssetEditorCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}
