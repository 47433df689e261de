package cmd

import (
	"fmt"

	"agricert/internal/export"
	"agricert/internal/filter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFilters filterFlags
	outputFile    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered records to a spreadsheet",
	Long: `Apply the filter flags to the loaded records and write the result to
--output (.xlsx or .csv), replacing any existing file.`,
	RunE: runExport,
}

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: EXPORT_FILE or "+export.DefaultPath+")")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := setupLogger(false); err != nil {
		return err
	}

	records, err := loadRecords()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	criteria, err := exportFilters.criteria(cmd, records)
	if err != nil {
		return err
	}
	filtered := filter.Apply(records, criteria)

	path := outputFile
	if path == "" {
		path = exportFile
	}

	if err := export.NewService(logger).Write(filtered, path); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Info("Export completed", zap.Int("records", len(filtered)), zap.Int("total", len(records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d of %d records to %s\n", len(filtered), len(records), path)
	return nil
}
