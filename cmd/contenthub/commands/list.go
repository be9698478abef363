package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"content-hub/internal/domain"
	"content-hub/internal/printer"
)

var (
	listStatus string
	listQuery  string
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List content items, newest first",
	Long: `List content items, newest first.

Items can be narrowed by status and by a case-insensitive search over the
title and description.

Examples:
  # Everything
  contenthub list

  # Open requests mentioning postgres
  contenthub list --status requested --query postgres

  # Published items as JSON
  contenthub list --status published --output json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", string(domain.FilterAll), "Filter by status: all, requested, in-progress or published")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search title and description")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listOutput != "table" && listOutput != "json" {
		return printer.Error("Invalid output format",
			fmt.Sprintf("Unknown output format %q.", listOutput),
			[]string{"Use --output table or --output json"})
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	view, err := s.Content.Browse(domain.Filter(strings.ToLower(listStatus)), listQuery)
	if err != nil {
		return printer.Error("Invalid status filter", err.Error(), []string{
			"Use one of: all, requested, in-progress, published",
		})
	}

	if listOutput == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view.Items)
	}

	printer.Items(view.Items)
	return nil
}
