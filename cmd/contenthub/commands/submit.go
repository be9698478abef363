package commands

import (
	"github.com/spf13/cobra"

	"content-hub/internal/domain"
	"content-hub/internal/printer"
)

var (
	submitTitle       string
	submitDescription string
	submitCategory    string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Request a new guide",
	Long: `Request a new guide. The request starts in the "requested" status.

Example:
  contenthub submit --title "Zero-downtime Postgres migrations" \
    --description "Expand and contract with real examples" --category Databases`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "Title (up to 100 characters)")
	submitCmd.Flags().StringVarP(&submitDescription, "description", "d", "", "Description (10-500 characters)")
	submitCmd.Flags().StringVarP(&submitCategory, "category", "c", "", "Category")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	item, err := s.Content.Submit(cmd.Context(), domain.CreateInput{
		Title:       submitTitle,
		Description: submitDescription,
		Category:    submitCategory,
	})
	if err != nil {
		return failure("Request not submitted", err)
	}

	printer.Success("Request submitted: %s\n", item.Title)
	printer.Info("  id: %s\n", item.ID)
	return nil
}
