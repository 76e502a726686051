// Command yolkctl parses ingredient lines, previews recipe pages and talks to
// a running shopping list server from the terminal.
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "yolkctl",
		Short:        "Turn recipe ingredients into a grouped shopping list",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newGroupCmd())
	rootCmd.AddCommand(newRecipeCmd())

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())

	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
