package tui

import (
	"fmt"
	"strings"

	"agricert/internal/export"
	"agricert/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ExportState int

const (
	ExportInputState ExportState = iota
	ExportProgressState
	ExportResultState
)

type ExportResult struct {
	Records  int
	FilePath string
	Error    error
}

type ExportCompleteMsg struct {
	Result ExportResult
}

type ExportModel struct {
	state     ExportState
	dashboard *Dashboard
	exporter  *export.Service
	pathInput textinput.Model
	result    ExportResult
	width     int
	height    int
}

func NewExportModel(d *Dashboard, exporter *export.Service, defaultPath string) *ExportModel {
	if defaultPath == "" {
		defaultPath = export.DefaultPath
	}
	pathInput := textinput.New()
	pathInput.Placeholder = export.DefaultPath
	pathInput.SetValue(defaultPath)
	pathInput.Width = 48
	pathInput.Focus()

	return &ExportModel{
		state:     ExportInputState,
		dashboard: d,
		exporter:  exporter,
		pathInput: pathInput,
	}
}

func (m *ExportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ExportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case ExportInputState:
			if msg.String() == "enter" {
				if strings.TrimSpace(m.pathInput.Value()) == "" {
					return m, nil
				}
				return m.startExport()
			}
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		case ExportProgressState:
			return m, nil
		case ExportResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.reset()
			}
			return m, nil
		}

	case ExportCompleteMsg:
		m.result = msg.Result
		m.state = ExportResultState
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == ExportInputState {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m *ExportModel) startExport() (tea.Model, tea.Cmd) {
	m.state = ExportProgressState
	return m, m.performExport()
}

// performExport snapshots the filtered view before handing it to the command.
func (m *ExportModel) performExport() tea.Cmd {
	path := strings.TrimSpace(m.pathInput.Value())
	records := append([]models.Record(nil), m.dashboard.Filtered()...)
	exporter := m.exporter

	return func() tea.Msg {
		result := ExportResult{FilePath: path, Records: len(records)}
		if err := exporter.Write(records, path); err != nil {
			result.Error = err
		}
		return ExportCompleteMsg{Result: result}
	}
}

func (m *ExportModel) reset() {
	m.state = ExportInputState
	m.result = ExportResult{}
	m.pathInput.Focus()
}

func (m *ExportModel) View() string {
	switch m.state {
	case ExportInputState:
		return m.renderInputForm()
	case ExportProgressState:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("💾 저장 중..."),
			helpStyle.Render("잠시만 기다려 주세요"))
	case ExportResultState:
		return m.renderResult()
	}
	return ""
}

func (m *ExportModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle := GetAdaptiveStyles(m.width)

	title := adaptiveTitleStyle.Render("💾 엑셀로 저장")

	form := adaptiveFormStyle.Render(
		labelStyle.Render("저장 경로:") + "\n" + m.pathInput.View() + "\n\n" +
			summaryStyle.Render(fmt.Sprintf("저장할 데이터: %d건", len(m.dashboard.Filtered()))),
	)

	help := helpStyle.Render("Enter: 저장 (기존 파일 덮어쓰기, .xlsx 또는 .csv) • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *ExportModel) renderResult() string {
	title := titleStyle.Render("💾 저장 결과")

	var status string
	if m.result.Error != nil {
		status = errorStyle.Render(fmt.Sprintf("❌ 저장 실패: %v", m.result.Error))
	} else {
		status = successStyle.Render(fmt.Sprintf("✅ 파일이 엑셀로 저장되었습니다: %s (%d건)", m.result.FilePath, m.result.Records))
	}

	help := helpStyle.Render("Enter: 다시 저장 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
}

func (m *ExportModel) Result() ExportResult {
	return m.result
}
