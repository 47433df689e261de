package cmd

import (
	"fmt"

	"agricert/internal/export"
	"agricert/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive dashboard (same as default)",
	Long: `Start the terminal dashboard. It provides filter controls, the filtered
table, per-province charts and export of the filtered records.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := setupLogger(true); err != nil {
		return err
	}

	records, err := loadRecords()
	if err != nil {
		logger.Error("Load failed", zap.Error(err))
		return fmt.Errorf("failed to load records: %w", err)
	}

	dashboard := tui.NewDashboard(records)
	model := tui.NewModel(dashboard, export.NewService(logger), exportFile)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
