package main

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/yolksters/internal/shopping"
)

type groupView struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

func newGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "group [line...]",
		Short: "Combine ingredient lines into a shopping list grouped by category",
		Long: `Combine ingredient lines the way the server does for an empty list and
print the category groups as JSON. Nothing is stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			plan := shopping.Reconcile(nil, lines)
			groups := shopping.GroupByCategory(plan.Items())

			out := make([]groupView, len(groups))
			for i, g := range groups {
				items := make([]string, len(g.Items))
				for j, item := range g.Items {
					items[j] = item.Item
				}
				out[i] = groupView{Category: string(g.Category), Items: items}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
