package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/people-aggregator/internal/model"
)

var searchQuery model.Query

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one aggregation search and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		agg := initAggregator(cfg)

		run, err := agg.Run(cmd.Context(), searchQuery)
		if err != nil {
			return eris.Wrap(err, "search")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery.Name, "name", "", "person's full name")
	searchCmd.Flags().StringVar(&searchQuery.Image, "image", "", "image URL for reverse face search")
	searchCmd.Flags().StringVar(&searchQuery.Email, "email", "", "email address")
	searchCmd.Flags().StringVar(&searchQuery.Phone, "phone", "", "phone number")
	searchCmd.Flags().StringVar(&searchQuery.Username, "username", "", "social media username")
	searchCmd.Flags().StringVar(&searchQuery.Address, "address", "", "physical address")
	searchCmd.Flags().StringVar(&searchQuery.Location, "location", "", "city/state to narrow other identifiers")
	rootCmd.AddCommand(searchCmd)
}
