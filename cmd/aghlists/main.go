package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "aghlists",
		Short:         "Generate AdGuard Home filter lists from a JSON rule document",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(generateCmd(), validateCmd(), listCmd(), queryCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
