package tui

import (
	"fmt"

	"agricert/internal/aggregate"
	"agricert/internal/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tableColumns = []table.Column{
	{Title: models.ColProvince, Width: 8},
	{Title: models.ColAddress, Width: 28},
	{Title: models.ColProduct, Width: 12},
	{Title: models.ColCategory, Width: 8},
	{Title: models.ColCertifier, Width: 18},
	{Title: "재배면적(㎡)", Width: 12},
	{Title: models.ColPlan, Width: 14},
	{Title: models.ColCertStart, Width: 10},
	{Title: models.ColCertEnd, Width: 10},
}

type TableModel struct {
	dashboard *Dashboard
	table     table.Model
	width     int
	height    int
}

func NewTableModel(d *Dashboard) *TableModel {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(inverseColor).Background(accentColor)
	t.SetStyles(styles)

	m := &TableModel{dashboard: d, table: t}
	m.Refresh()
	return m
}

func (m *TableModel) Init() tea.Cmd {
	return nil
}

func (m *TableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 4 {
		m.table.SetWidth(width - 4)
	}
	if height > 10 {
		m.table.SetHeight(height - 10)
	}
}

// Refresh rebuilds the rows from the current filtered view.
func (m *TableModel) Refresh() {
	filtered := m.dashboard.Filtered()
	rows := make([]table.Row, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, table.Row{
			models.Text(r.Province),
			models.Text(r.Address),
			models.Text(r.Product),
			models.Text(r.Category),
			models.Text(r.Certifier),
			formatNullable(r.Area),
			formatNullable(r.Plan),
			formatDate(r.CertStart),
			formatDate(r.CertEnd),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *TableModel) View() string {
	title := titleStyle.Render("📋 검색 결과")

	filtered := m.dashboard.Filtered()
	summary := summaryStyle.Render(fmt.Sprintf(
		"%d건 • 재배면적 합계 %s㎡ • 인증계획량 합계 %skg",
		len(filtered),
		formatAmount(aggregate.Total(filtered, aggregate.Area)),
		formatAmount(aggregate.Total(filtered, aggregate.Plan)),
	))

	var body string
	if len(filtered) == 0 {
		body = warningStyle.Render("조건에 맞는 데이터가 없습니다")
	} else {
		body = m.table.View()
	}

	help := helpStyle.Render("↑/↓: 이동 • PgUp/PgDn: 페이지 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, summary, help)
}

func formatNullable(f *float64) string {
	if f == nil {
		return "-"
	}
	return formatAmount(*f)
}
