package tui

import (
	"fmt"
	"strings"

	"agricert/internal/aggregate"
	"agricert/internal/chart"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	maxBarWidth = 50
)

type ChartModel struct {
	dashboard *Dashboard
	regions   []string
	selected  int
	area      *chart.Chart
	plan      *chart.Chart
	share     *chart.Chart
	width     int
	height    int
}

func NewChartModel(d *Dashboard) *ChartModel {
	m := &ChartModel{dashboard: d}
	m.Refresh()
	return m
}

func (m *ChartModel) Init() tea.Cmd {
	return nil
}

func (m *ChartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh recomputes the aggregations from the current filtered view. The
// selected region is kept when it is still present.
func (m *ChartModel) Refresh() {
	filtered := m.dashboard.Filtered()

	var current string
	if m.selected < len(m.regions) {
		current = m.regions[m.selected]
	}
	m.regions = m.dashboard.Regions()
	m.selected = 0
	for i, r := range m.regions {
		if r == current {
			m.selected = i
		}
	}

	m.area = chart.AreaByProvince(aggregate.SumByProvince(filtered, aggregate.Area))
	m.plan = chart.PlanByProvince(aggregate.SumByProvince(filtered, aggregate.Plan))
	m.refreshShare()
}

func (m *ChartModel) refreshShare() {
	m.share = nil
	if len(m.regions) == 0 {
		return
	}
	region := m.regions[m.selected]
	m.share = chart.ProductShare(region, aggregate.TopProducts(m.dashboard.Filtered(), region, aggregate.TopN))
}

func (m *ChartModel) Region() string {
	if len(m.regions) == 0 {
		return ""
	}
	return m.regions[m.selected]
}

func (m *ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.regions) == 0 {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.selected = (m.selected - 1 + len(m.regions)) % len(m.regions)
		m.refreshShare()
	case "right", "l":
		m.selected = (m.selected + 1) % len(m.regions)
		m.refreshShare()
	}
	return m, nil
}

func (m *ChartModel) View() string {
	title := titleStyle.Render("📊 시도별 차트")

	if len(m.dashboard.Filtered()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			warningStyle.Render("조건에 맞는 데이터가 없습니다"),
			helpStyle.Render("Esc: 메뉴"))
	}

	barWidth := m.width/2 - 10
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	sections := []string{
		title,
		renderBars(m.area, barWidth, "㎡"),
		renderBars(m.plan, barWidth, "kg"),
		selectorStyle.Render(fmt.Sprintf("지역 선택: ◀ %s ▶", m.Region())),
		renderPie(m.share, barWidth),
		helpStyle.Render("←/→: 지역 변경 • Esc: 메뉴"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderBars(c *chart.Chart, width int, unit string) string {
	if c == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render(c.Title))
	sb.WriteString("\n")

	labelWidth := labelWidthOf(c)
	for _, p := range c.Points {
		ratio := 0.0
		if c.Max > 0 {
			ratio = p.Value / c.Max
		}
		bar := progress.New(
			progress.WithSolidFill(p.Color),
			progress.WithoutPercentage(),
			progress.WithWidth(width),
		)
		sb.WriteString(fmt.Sprintf("%s %s %s%s\n",
			lipgloss.NewStyle().Width(labelWidth).Render(p.Label),
			bar.ViewAs(ratio),
			formatAmount(p.Value),
			unit,
		))
	}
	return sb.String()
}

// renderPie draws each slice as a bar of its share with a legend.
func renderPie(c *chart.Chart, width int) string {
	if c == nil {
		return warningStyle.Render("선택한 지역에 품목 데이터가 없습니다")
	}

	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (상위 %d개 품목 + %s)", c.Title, aggregate.TopN, aggregate.OtherLabel)))
	sb.WriteString("\n")

	labelWidth := labelWidthOf(c)
	for _, p := range c.Points {
		bar := progress.New(
			progress.WithSolidFill(p.Color),
			progress.WithoutPercentage(),
			progress.WithWidth(width),
		)
		sb.WriteString(fmt.Sprintf("%s %s %6s  %skg\n",
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Width(labelWidth).Render("● "+p.Label),
			bar.ViewAs(p.Share),
			formatPercent(p.Share),
			formatAmount(p.Value),
		))
	}
	return sb.String()
}

func labelWidthOf(c *chart.Chart) int {
	w := 0
	for _, p := range c.Points {
		if lw := lipgloss.Width(p.Label); lw > w {
			w = lw
		}
	}
	return w + 3
}
