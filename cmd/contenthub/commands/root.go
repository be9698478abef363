package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"content-hub/internal/logger"
	"content-hub/internal/printer"
)

var (
	sourceName string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contenthub",
	Short: "Browse and request community guides",
	Long: `contenthub works with the community content collection from the terminal.

Content is read from the data source selected by DATA_SOURCE (mock, postgres,
sqlite or redis). The --source flag overrides it for a single command. All
other settings come from the same environment variables as the server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}
		logger.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Unknown flags are an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	// Errors are printed with colors by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourceName, "source", "s", "", "Data source: mock, postgres, sqlite or redis (default from DATA_SOURCE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}
