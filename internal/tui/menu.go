package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label  string
	screen Screen
}

// menuItems maps each entry to its screen; MenuScreen marks the exit entry.
var menuItems = []menuItem{
	{"🔎 검색 조건", FilterScreen},
	{"📋 검색 결과", TableScreen},
	{"📊 시도별 차트", ChartScreen},
	{"💾 엑셀로 저장", ExportScreen},
	{"🚪 종료", MenuScreen},
}

type MenuModel struct {
	dashboard *Dashboard
	cursor    int
	width     int
	height    int
}

func NewMenuModel(d *Dashboard) *MenuModel {
	return &MenuModel{dashboard: d}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(menuItems)-1)
	case "enter", " ":
		item := menuItems[m.cursor]
		if item.screen == MenuScreen {
			return m, tea.Quit
		}
		return m, ChangeScreen(item.screen)
	}
	return m, nil
}

func (m *MenuModel) View() string {
	adaptiveTitleStyle, _ := GetAdaptiveStyles(m.width)

	title := adaptiveTitleStyle.Align(lipgloss.Center).Render("🌱 농가 관리 프로그램")

	var menu string
	for i, item := range menuItems {
		if m.cursor == i {
			menu += "> " + selectedMenuItemStyle.Render(item.label) + "\n"
			continue
		}
		menu += "  " + menuItemStyle.Render(item.label) + "\n"
	}

	status := summaryStyle.Render(fmt.Sprintf("전체 %d건 중 %d건 선택됨",
		len(m.dashboard.Records()), len(m.dashboard.Filtered())))

	help := helpStyle.Render("↑/↓ (j/k): 이동 • Enter: 선택 • q: 종료")

	content := lipgloss.JoinVertical(lipgloss.Center, title, menu, status, help)

	if m.width > 0 {
		content = lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
	}

	return content
}
