// Command portfolio serves the portfolio site and manages its project
// catalog from the command line.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site",
		Long:          "Serves the portfolio pages, the PIN-gated upload page and the JSON API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "portfolio.yaml",
		"path to YAML config file (missing file means defaults)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newCatalogCommand(opts))
	cmd.AddCommand(newPINHashCommand())

	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
