package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"content-hub/internal/domain"
	"content-hub/internal/guide"
	"content-hub/internal/printer"
)

var (
	guideRaw   bool
	guideStyle string
	guideWidth int
)

var guidesCmd = &cobra.Command{
	Use:   "guides",
	Short: "List published guides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		printer.Guides(s.Content.Guides())
		return nil
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide SLUG",
	Short: "Read a published guide",
	Long: `Read a published guide in the terminal.

The guide is rendered as styled markdown. Use --raw to print the markdown
source, for example to pipe it into another tool.

Examples:
  contenthub guide getting-started-with-react
  contenthub guide getting-started-with-react --style light --width 100
  contenthub guide getting-started-with-react --raw > guide.md`,
	Args: cobra.ExactArgs(1),
	RunE: runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guideRaw, "raw", false, "Print markdown without styling")
	guideCmd.Flags().StringVar(&guideStyle, "style", "auto", "Style: auto, dark, light or notty")
	guideCmd.Flags().IntVar(&guideWidth, "width", 80, "Wrap width in columns")
	rootCmd.AddCommand(guidesCmd)
	rootCmd.AddCommand(guideCmd)
}

func runGuide(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	item, err := s.Content.Guide(args[0])
	if errors.Is(err, domain.ErrGuideNotFound) {
		return printer.Error("Guide not found",
			fmt.Sprintf("No published guide has the slug %q.", args[0]),
			[]string{"Run 'contenthub guides' to see available slugs"})
	}
	if err != nil {
		return failure("Cannot read guide", err)
	}

	doc, err := guide.Build(item)
	if err != nil {
		return failure("Cannot read guide", err)
	}

	if guideRaw {
		printer.Printf("%s", doc.Markdown)
		return nil
	}

	rendered, err := guide.Render(doc.Markdown, guideStyle, guideWidth)
	if err != nil {
		return printer.Error("Cannot render guide", err.Error(), []string{"Use --raw to print the markdown source"})
	}
	printer.Printf("%s", rendered)
	return nil
}
