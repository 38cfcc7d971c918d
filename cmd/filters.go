/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/longkey1/runway/internal/runway/config"
	"github.com/spf13/cobra"
)

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the event filters",
	Long: `List the seasons and fashion capitals that can narrow down answers.

Filters are set with 'runway chat --season <season> --city <city>', with the
season and cities keys of the config file, or with /season and /cities in an
interactive session. They are added to the instruction sent with every
question, for example:

  - Filtering by: Season: Resort, Cities: Paris, Milan`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Seasons:")
		for _, s := range config.Seasons {
			if s == config.SeasonAll {
				fmt.Printf("  %s (no season filter)\n", s)
				continue
			}
			fmt.Printf("  %s\n", s)
		}

		fmt.Println("\nFashion capitals:")
		for _, c := range config.Cities {
			fmt.Printf("  %s\n", c)
		}
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
