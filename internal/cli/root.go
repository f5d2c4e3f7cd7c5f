package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "quotectl",
		Short:        "Quote delivery costs against a warehouse catalog",
		SilenceUsage: true,
	}

	cmd.AddCommand(quoteCmd())
	cmd.AddCommand(catalogCmd())
	return cmd
}
