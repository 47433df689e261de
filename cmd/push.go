package cmd

import (
	"fmt"

	"agricert/internal/database"
	"agricert/internal/filter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pushFilters  filterFlags
	dropExisting bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Copy the filtered records into a MongoDB collection",
	Long: `Apply the filter flags to the spreadsheet records and insert the result
into --collection. Use --drop to replace the collection contents.`,
	RunE: runPush,
}

func init() {
	pushFilters.register(pushCmd)
	pushCmd.Flags().BoolVar(&dropExisting, "drop", false, "Drop existing collection before inserting")
}

func runPush(cmd *cobra.Command, args []string) error {
	if err := setupLogger(false); err != nil {
		return err
	}
	if fromDB {
		return fmt.Errorf("--from-db cannot be combined with push")
	}

	records, err := loadRecords()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	criteria, err := pushFilters.criteria(cmd, records)
	if err != nil {
		return err
	}
	filtered := filter.Apply(records, criteria)

	db, err := database.NewMongoDB(dbURI, dbName, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	inserted, err := db.InsertRecords(collection, filtered, dropExisting)
	if err != nil {
		return fmt.Errorf("push failed after %d records: %w", inserted, err)
	}

	logger.Info("Push completed", zap.String("collection", collection), zap.Int("records", inserted))
	fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d records into %s.%s\n", inserted, dbName, collection)
	return nil
}
