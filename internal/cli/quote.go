package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"warehouse-cost-service/internal/adapters/repositories"
	"warehouse-cost-service/internal/config"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/services"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	var catalogPath string
	var breakdown bool
	var asJSON bool
	var allowUnsourced bool

	c := &cobra.Command{
		Use:   "quote ITEM=QTY [ITEM=QTY...]",
		Short: "Price an order offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := parseOrderArgs(args)
			if err != nil {
				return err
			}

			cat := domain.DefaultCatalog()
			if catalogPath != "" {
				cat, err = repositories.NewFileCatalogRepository(catalogPath).LoadCatalog(cmd.Context())
				if err != nil {
					return err
				}
			}

			policy := services.UnsourcedReject
			if allowUnsourced {
				policy = services.UnsourcedDrop
			}

			rates, err := config.LoadRates()
			if err != nil {
				return err
			}

			engine, err := services.NewEngine(cat, rates, policy)
			if err != nil {
				return err
			}

			q, err := engine.Quote(order)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}

			if breakdown {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "LEG\tCENTER\tDISTANCE\tWEIGHT\tRATE\tCOST")
				for _, l := range q.Legs {
					fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n", l.Kind, l.Center, l.Distance, l.Weight, l.Rate, l.Cost)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if len(q.Unsourced) > 0 {
				fmt.Fprintf(out, "unsourced: %s\n", strings.Join(q.Unsourced, ", "))
			}
			fmt.Fprintf(out, "total_cost: %g\n", q.TotalCost)
			return nil
		},
	}

	c.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog file (.json/.yaml); built-in catalog when omitted")
	c.Flags().BoolVarP(&breakdown, "breakdown", "b", false, "Print every charged leg")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the quote as JSON")
	c.Flags().BoolVar(&allowUnsourced, "allow-unsourced", false, "Drop items no center stocks instead of failing")
	return c
}

// parseOrderArgs turns ["A=1", "E=2"] into an order; repeated items add up.
func parseOrderArgs(args []string) (domain.Order, error) {
	order := make(domain.Order, len(args))
	for _, arg := range args {
		item, qtyStr, ok := strings.Cut(arg, "=")
		item = strings.TrimSpace(item)
		if !ok || item == "" {
			return nil, fmt.Errorf("invalid order argument %q (want ITEM=QTY)", arg)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q: must be a positive integer", arg)
		}
		order[item] += qty
	}
	return order, nil
}
