package cli

import (
	"encoding/json"
	"fmt"
	"warehouse-cost-service/internal/adapters/repositories"
	"warehouse-cost-service/internal/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func catalogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog files",
	}
	c.AddCommand(catalogValidateCmd())
	c.AddCommand(catalogExportCmd())
	return c
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH",
		Short: "Validate a catalog file (.json/.yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := repositories.NewFileCatalogRepository(args[0]).LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK hub=%s centers=%d items=%d\n", cat.Hub, len(cat.Centers), len(cat.Items))
			return nil
		},
	}
}

func catalogExportCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "export",
		Short: "Print the built-in reference catalog as a seed document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := repositories.DocumentFromDomain(domain.DefaultCatalog())
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(doc)
			default:
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: json or yaml")
	return c
}
