package tui

import (
	"fmt"

	"agricert/internal/export"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	MenuScreen Screen = iota
	FilterScreen
	TableScreen
	ChartScreen
	ExportScreen
)

type Model struct {
	currentScreen Screen
	dashboard     *Dashboard
	menuModel     *MenuModel
	filterModel   *FilterModel
	tableModel    *TableModel
	chartModel    *ChartModel
	exportModel   *ExportModel
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(d *Dashboard, exporter *export.Service, exportPath string) Model {
	return Model{
		currentScreen: MenuScreen,
		dashboard:     d,
		menuModel:     NewMenuModel(d),
		filterModel:   NewFilterModel(d),
		tableModel:    NewTableModel(d),
		chartModel:    NewChartModel(d),
		exportModel:   NewExportModel(d, exporter, exportPath),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.filterModel.SetSize(msg.Width, msg.Height)
		m.tableModel.SetSize(msg.Width, msg.Height)
		m.chartModel.SetSize(msg.Width, msg.Height)
		m.exportModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			// Other screens have text inputs that need the key.
			if m.currentScreen == MenuScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen != MenuScreen {
				m.currentScreen = MenuScreen
				m.err = nil
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		m.err = nil
		switch msg.Screen {
		case FilterScreen:
			return m, m.filterModel.Init()
		case TableScreen:
			m.tableModel.Refresh()
		case ChartScreen:
			m.chartModel.Refresh()
		case ExportScreen:
			return m, m.exportModel.Init()
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case MenuScreen:
		_, cmd = m.menuModel.Update(msg)
	case FilterScreen:
		_, cmd = m.filterModel.Update(msg)
	case TableScreen:
		_, cmd = m.tableModel.Update(msg)
	case ChartScreen:
		_, cmd = m.chartModel.Update(msg)
	case ExportScreen:
		_, cmd = m.exportModel.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "농가 관리 프로그램을 종료합니다. 👋\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case FilterScreen:
		content = m.filterModel.View()
	case TableScreen:
		content = m.tableModel.View()
	case ChartScreen:
		content = m.chartModel.View()
	case ExportScreen:
		content = m.exportModel.View()
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("오류: %v", m.err))
	}

	return content
}

func (m Model) Screen() Screen {
	return m.currentScreen
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
