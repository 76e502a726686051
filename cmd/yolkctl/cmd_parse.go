package main

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/yolksters/internal/ingredient"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [line...]",
		Short: "Parse ingredient lines into quantity, unit, name and category",
		Long: `Parse ingredient lines and print the result as JSON.

Lines are taken from the arguments, or from stdin (one per line) when no
arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			parsed := make([]ingredient.Parsed, len(lines))
			for i, line := range lines {
				parsed[i] = ingredient.Parse(line)
			}
			return writeJSON(cmd.OutOrStdout(), parsed)
		},
	}
}
