package cmd

import (
	"fmt"
	"io"
	"strconv"

	"agricert/internal/aggregate"
	"agricert/internal/filter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	summaryFilters filterFlags
	summaryRegion  string
	summaryTop     int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-province totals and the product breakdown of a region",
	Long: `Print the cultivated area and planned quantity totals per province for
the filtered records, followed by the top products of --region by planned
quantity with the remainder collapsed into 기타.`,
	RunE: runSummary,
}

func init() {
	summaryFilters.register(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryRegion, "region", "", "Province for the product breakdown (default: first province in the result)")
	summaryCmd.Flags().IntVar(&summaryTop, "top", aggregate.TopN, "Number of products kept before collapsing the rest")
}

func runSummary(cmd *cobra.Command, args []string) error {
	if err := setupLogger(false); err != nil {
		return err
	}

	records, err := loadRecords()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	criteria, err := summaryFilters.criteria(cmd, records)
	if err != nil {
		return err
	}
	filtered := filter.Apply(records, criteria)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d of %d records match\n\n", len(filtered), len(records))
	if len(filtered) == 0 {
		return nil
	}

	printGroups(out, "시도별 재배면적 합계", "시도", aggregate.Area.Label(), aggregate.SumByProvince(filtered, aggregate.Area))
	printGroups(out, "시도별 인증계획량 합계", "시도", aggregate.Plan.Label(), aggregate.SumByProvince(filtered, aggregate.Plan))

	region := summaryRegion
	if region == "" {
		provinces := aggregate.Provinces(filtered)
		if len(provinces) == 0 {
			fmt.Fprintln(out, "No matching record has a province; skipping the product breakdown")
			return nil
		}
		region = provinces[0]
	}
	printGroups(out, region+" 지역의 인증계획량 분포", "대표품목", aggregate.Plan.Label(),
		aggregate.TopProducts(filtered, region, summaryTop))
	return nil
}

func printGroups(w io.Writer, title, keyHeader, valueHeader string, groups []aggregate.Group) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Key, strconv.FormatFloat(g.Value, 'f', -1, 64), strconv.Itoa(g.Count)})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(keyHeader, valueHeader, "건수").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
}
