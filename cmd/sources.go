package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered data sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		agg := initAggregator(cfg)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"sources":    agg.Sources(),
			"categories": agg.Categories(),
		})
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
