package cmd

import (
	"fmt"
	"log"
	"os"

	"agricert/internal/database"
	"agricert/internal/export"
	"agricert/internal/models"
	"agricert/internal/sheet"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDataFile = "agri_certifi_data.xlsx"
	defaultLogFile  = "agricert.log"
)

var (
	dataFile   string
	exportFile string
	fromDB     bool
	dbURI      string
	dbName     string
	collection string
	logFile    string
	logLevel   string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "agricert",
	Short: "Browse, filter and export agricultural certification records",
	Long: `agricert loads a spreadsheet of eco-friendly farm certification records
and lets you filter them by province, address, product, category, certifying
body, cultivated area, planned quantity and certification period.

Running it without a command starts the interactive dashboard.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataFile, "data", defaultDataFile, "Spreadsheet to load (.xlsx or .csv)")
	flags.BoolVar(&fromDB, "from-db", false, "Load records from MongoDB instead of the spreadsheet")
	flags.StringVarP(&dbURI, "db-uri", "u", "mongodb://localhost:27017", "MongoDB connection URI")
	flags.StringVarP(&dbName, "database", "d", "agricert", "Database name")
	flags.StringVarP(&collection, "collection", "t", "certifications", "Collection name")
	flags.StringVar(&logFile, "log-file", defaultLogFile, "Log file used while the dashboard is running")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(pushCmd)
}

// initConfig lets .env and the environment fill in flags that were not set
// on the command line.
func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	envOverride := func(name, env string, dst *string) {
		if v := os.Getenv(env); v != "" && !rootCmd.PersistentFlags().Changed(name) {
			*dst = v
		}
	}
	envOverride("data", "DATA_FILE", &dataFile)
	envOverride("db-uri", "DB_URI", &dbURI)
	envOverride("database", "DB_NAME", &dbName)
	envOverride("collection", "DB_COLLECTION", &collection)
	envOverride("log-file", "LOG_FILE", &logFile)
	envOverride("log-level", "LOG_LEVEL", &logLevel)

	exportFile = export.DefaultPath
	if v := os.Getenv("EXPORT_FILE"); v != "" {
		exportFile = v
	}
}

// setupLogger replaces the package logger. The dashboard owns the terminal,
// so interactive runs log to a file instead of stderr.
func setupLogger(toFile bool) error {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if toFile {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}

	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// loadRecords reads the source table. Any error here is fatal for the run.
func loadRecords() ([]models.Record, error) {
	if fromDB {
		db, err := database.NewMongoDB(dbURI, dbName, logger)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		records, err := db.FindRecords(collection)
		if err != nil {
			return nil, fmt.Errorf("failed to load records from %s.%s: %w", dbName, collection, err)
		}
		return records, nil
	}

	records, err := sheet.Load(dataFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded records", zap.String("path", dataFile), zap.Int("records", len(records)))
	return records, nil
}
