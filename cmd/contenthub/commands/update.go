package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"content-hub/internal/domain"
	"content-hub/internal/printer"
	"content-hub/internal/store"
)

var (
	updateStatus string
	updateSlug   string
	updateAuthor string
)

var updateCmd = &cobra.Command{
	Use:   "update ITEM_ID",
	Short: "Move an item through the editorial workflow",
	Long: `Move an item to another status. Published items need a slug; an author
may be given for in-progress and published items.

Short IDs as printed by "list" are accepted when they are unambiguous.

Examples:
  contenthub update 3f2a9c1e --status in-progress --author Dana
  contenthub update 3f2a9c1e --status published --slug postgres-indexing --author Dana`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status: requested, in-progress or published")
	updateCmd.Flags().StringVar(&updateSlug, "slug", "", "Guide slug (published only)")
	updateCmd.Flags().StringVar(&updateAuthor, "author", "", "Author name")
	_ = updateCmd.MarkFlagRequired("status")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	status := domain.Status(strings.ToLower(updateStatus))
	stage, err := domain.NewStage(status, updateSlug, updateAuthor)
	if err != nil {
		return printer.Error("Invalid update", err.Error(), []string{
			"Published items need --slug",
			"Only published items may have a slug",
		})
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	item, err := findItem(s.Content.Snapshot(), args[0])
	if err != nil {
		return printer.Error("Unknown item", err.Error(), []string{"Run 'contenthub list' to see item IDs"})
	}

	item.Stage = stage
	updated, err := s.Content.UpdateItem(cmd.Context(), item)
	switch {
	case errors.Is(err, domain.ErrDuplicateSlug):
		return printer.Error("Slug already in use",
			fmt.Sprintf("Another guide is published as %q.", updateSlug),
			[]string{"Choose a different --slug"})
	case err != nil:
		return failure("Update failed", err)
	}

	printer.Success("%s is now %s\n", updated.Title, printer.Status(updated.Status()))
	return nil
}

// findItem resolves a full or unambiguous short ID.
func findItem(st store.State, id string) (domain.ContentItem, error) {
	if item, ok := st.Find(id); ok {
		return item, nil
	}
	var matches []domain.ContentItem
	for _, item := range st.Items {
		if strings.HasPrefix(item.ID, id) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return domain.ContentItem{}, fmt.Errorf("%q: %w", id, domain.ErrItemNotFound)
	case 1:
		return matches[0], nil
	}
	return domain.ContentItem{}, fmt.Errorf("%q matches %d items", id, len(matches))
}
