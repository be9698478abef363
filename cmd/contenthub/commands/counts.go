package commands

import (
	"github.com/spf13/cobra"

	"content-hub/internal/printer"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show the number of items per status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		printer.Counts(s.Content.Counts())
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		for _, c := range s.Content.Categories() {
			printer.Println(c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)
	rootCmd.AddCommand(categoriesCmd)
}
