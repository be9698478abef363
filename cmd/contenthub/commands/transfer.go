package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"content-hub/internal/config"
	"content-hub/internal/domain"
	"content-hub/internal/printer"
)

var (
	importFormatName string
	exportFormatName string
	exportFile       string
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import items from an NDJSON or YAML file",
	Long: `Import items into the data source.

Each record is validated like a submission and must carry an id and a
createdAt timestamp. Invalid records are listed and skipped; records whose id
already exists are left untouched, so importing is safe to repeat.

The format is taken from --format or the file extension (.ndjson, .jsonl,
.yaml, .yml). A YAML file has the same layout as SEED_FILE.

Examples:
  contenthub import ./seed.yaml --source sqlite
  contenthub import ./backup.ndjson --source redis`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every item as NDJSON or YAML",
	Long: `Export the whole collection, newest first.

The YAML format can be fed back through "contenthub import" or SEED_FILE.

Examples:
  contenthub export > backup.ndjson
  contenthub export --format yaml --file seed.yaml --source postgres`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	importCmd.Flags().StringVarP(&importFormatName, "format", "f", "", "Input format: ndjson or yaml (default from extension)")
	exportCmd.Flags().StringVarP(&exportFormatName, "format", "f", string(domain.FormatNDJSON), "Output format: ndjson or yaml")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	name := importFormatName
	if name == "" {
		name = strings.ToLower(filepath.Ext(args[0]))
	}
	format, err := domain.ParseTransferFormat(name)
	if err != nil {
		return printer.Error("Unknown import format",
			fmt.Sprintf("Cannot tell the format of %s.", args[0]),
			[]string{"Pass --format ndjson or --format yaml"})
	}

	f, err := os.Open(args[0])
	if err != nil {
		return printer.Error("Cannot read file", err.Error(), nil)
	}
	defer f.Close()

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if s.backend.Source.Name() == config.SourceMock {
		printer.Warning("The mock source discards imported items when the command exits\n")
	}
	printer.Step("Importing %s into %s\n", filepath.Base(args[0]), s.backend.Source.Name())

	result, err := s.Transfer.Import(cmd.Context(), format, f)
	if err != nil {
		return failure("Import failed", err)
	}

	for _, e := range result.Errors {
		label := fmt.Sprintf("record %d", e.Row)
		if e.ID != "" {
			label += " (" + e.ID + ")"
		}
		printer.Warning("%s: %s: %s\n", label, e.Field, e.Reason)
	}
	printer.Success("%d inserted, %d already present, %d rejected\n", result.Inserted, result.Skipped, result.FailureCount)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := domain.ParseTransferFormat(strings.ToLower(exportFormatName))
	if err != nil {
		return printer.Error("Unknown export format", err.Error(), []string{"Pass --format ndjson or --format yaml"})
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if exportFile == "" {
		_, err := s.Transfer.Export(cmd.Context(), format, cmd.OutOrStdout())
		if err != nil {
			return failure("Export failed", err)
		}
		return nil
	}

	f, err := os.Create(exportFile)
	if err != nil {
		return printer.Error("Cannot create file", err.Error(), nil)
	}
	n, err := s.Transfer.Export(cmd.Context(), format, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return failure("Export failed", err)
	}
	printer.Success("Exported %d items to %s\n", n, exportFile)
	return nil
}
