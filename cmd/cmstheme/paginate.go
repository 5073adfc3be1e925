package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmstheme/pkg/pagination"
)

func paginateCmd() *cobra.Command {
	var (
		radius int
		query  string
	)

	cmd := &cobra.Command{
		Use:   "paginate CURRENT TOTAL",
		Short: "Print the pagination strip for a page",
		Long: `Print the page numbers and ellipses shown for page CURRENT of TOTAL.
With --query, each page is printed with the link that keeps the other
query parameters.`,
		Example: `  cmstheme paginate 3 7
  cmstheme paginate 5 12 --radius 2 --query "q=alpha&page=5"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("current page: %w", err)
			}
			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("total pages: %w", err)
			}

			items := pagination.Range(current, total, radius)
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("query") {
				parts := make([]string, len(items))
				for i, item := range items {
					parts[i] = item.String()
				}
				fmt.Fprintln(out, strings.Join(parts, " "))
				return nil
			}
			for _, item := range items {
				if item.Ellipsis {
					fmt.Fprintln(out, item.String())
					continue
				}
				fmt.Fprintf(out, "%d\t%s\n", item.Number, pagination.PageURL(query, item.Number))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&radius, "radius", "r", pagination.DefaultRadius, "pages shown on each side of the current page")
	cmd.Flags().StringVarP(&query, "query", "q", "", "raw query string to preserve in page links")
	return cmd
}
