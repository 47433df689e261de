package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"agricert/internal/filter"
	"agricert/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldProvince field = iota
	fieldAddress
	fieldProduct
	fieldCategory
	fieldCertifier
	fieldAreaMin
	fieldAreaMax
	fieldPlanMin
	fieldPlanMax
	fieldStart
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldProvince:  "시도 검색",
	fieldAddress:   "상세지역 검색",
	fieldProduct:   "대표품목 검색",
	fieldCategory:  "인증분류 검색",
	fieldCertifier: "인증기관 검색",
	fieldAreaMin:   "재배면적 최소(㎡)",
	fieldAreaMax:   "재배면적 최대(㎡)",
	fieldPlanMin:   "인증계획량 최소(kg)",
	fieldPlanMax:   "인증계획량 최대(kg)",
	fieldStart:     "인증 시작일",
	fieldEnd:       "인증 종료일",
}

func (f field) isSelector() bool {
	return f == fieldProvince || f == fieldCategory || f == fieldCertifier
}

type FilterModel struct {
	dashboard *Dashboard
	focused   field
	province  int
	category  int
	// certifier 0 selects all; i selects Certifiers()[i-1].
	certifier int
	inputs    [fieldCount]textinput.Model
	warning   string
	width     int
	height    int
}

func NewFilterModel(d *Dashboard) *FilterModel {
	m := &FilterModel{dashboard: d}
	for f := field(0); f < fieldCount; f++ {
		if f.isSelector() {
			continue
		}
		input := textinput.New()
		input.CharLimit = 64
		input.Width = 32
		m.inputs[f] = input
	}
	m.inputs[fieldAddress].Placeholder = "예: 홍천군"
	m.inputs[fieldProduct].Placeholder = "예: 사과"
	m.inputs[fieldStart].Placeholder = models.PeriodLayout
	m.inputs[fieldEnd].Placeholder = models.PeriodLayout

	m.load(d.Criteria())
	m.updateFocus()
	return m
}

func (m *FilterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FilterModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focused.isSelector() {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "tab", "down":
		m.focused = (m.focused + 1) % fieldCount
		m.updateFocus()
		return m, nil
	case "shift+tab", "up":
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		m.updateFocus()
		return m, nil
	case "ctrl+r":
		m.dashboard.Reset()
		m.load(m.dashboard.Criteria())
		m.warning = ""
		return m, nil
	case "enter":
		if m.warning != "" {
			return m, ShowError(errors.New(m.warning))
		}
		return m, ChangeScreen(TableScreen)
	}

	if m.focused.isSelector() {
		switch key.String() {
		case "left", "h":
			m.cycle(-1)
		case "right", "l", " ":
			m.cycle(1)
		default:
			return m, nil
		}
		m.apply()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.apply()
	return m, cmd
}

func (m *FilterModel) cycle(step int) {
	wrap := func(v, n int) int { return ((v+step)%n + n) % n }
	switch m.focused {
	case fieldProvince:
		m.province = wrap(m.province, len(models.Provinces))
	case fieldCategory:
		m.category = wrap(m.category, len(models.Categories))
	case fieldCertifier:
		m.certifier = wrap(m.certifier, len(m.dashboard.Certifiers())+1)
	}
}

// apply recomputes the filtered view. Unparseable numbers or dates keep the
// previous criteria and leave a warning.
func (m *FilterModel) apply() {
	c, err := m.criteria()
	if err != nil {
		m.warning = err.Error()
		return
	}
	m.warning = ""
	m.dashboard.SetCriteria(c)
}

func (m *FilterModel) criteria() (filter.Criteria, error) {
	c := filter.Criteria{
		Province: models.Provinces[m.province],
		Address:  strings.TrimSpace(m.inputs[fieldAddress].Value()),
		Product:  strings.TrimSpace(m.inputs[fieldProduct].Value()),
		Category: models.Categories[m.category],
	}
	if m.certifier > 0 {
		c.Certifier = m.dashboard.Certifiers()[m.certifier-1]
	}

	var err error
	if c.Area, err = m.parseRange(fieldAreaMin, fieldAreaMax); err != nil {
		return c, err
	}
	if c.Plan, err = m.parseRange(fieldPlanMin, fieldPlanMax); err != nil {
		return c, err
	}
	if c.StartFrom, err = m.parseDate(fieldStart); err != nil {
		return c, err
	}
	if c.EndUntil, err = m.parseDate(fieldEnd); err != nil {
		return c, err
	}
	return c, nil
}

// parseRange treats a blank bound as open.
func (m *FilterModel) parseRange(minField, maxField field) (filter.Range, error) {
	r := filter.Range{Min: math.Inf(-1), Max: math.Inf(1)}
	parse := func(f field, dst *float64) error {
		s := strings.ReplaceAll(strings.TrimSpace(m.inputs[f].Value()), ",", "")
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%s: 숫자가 아닙니다 (%q)", fieldLabels[f], s)
		}
		*dst = v
		return nil
	}
	if err := parse(minField, &r.Min); err != nil {
		return r, err
	}
	if err := parse(maxField, &r.Max); err != nil {
		return r, err
	}
	return r, nil
}

func (m *FilterModel) parseDate(f field) (time.Time, error) {
	s := strings.TrimSpace(m.inputs[f].Value())
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.PeriodLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: 날짜 형식은 YYYY.M.D 입니다 (입력: %q)", fieldLabels[f], s)
	}
	return t, nil
}

// load copies criteria into the controls.
func (m *FilterModel) load(c filter.Criteria) {
	m.province = 0
	for i, p := range models.Provinces {
		if p == c.Province {
			m.province = i
		}
	}
	m.category = 0
	for i, cat := range models.Categories {
		if cat == c.Category {
			m.category = i
		}
	}
	m.certifier = 0
	for i, name := range m.dashboard.Certifiers() {
		if name == c.Certifier {
			m.certifier = i + 1
		}
	}

	m.inputs[fieldAddress].SetValue(c.Address)
	m.inputs[fieldProduct].SetValue(c.Product)
	m.inputs[fieldAreaMin].SetValue(formatBound(c.Area.Min))
	m.inputs[fieldAreaMax].SetValue(formatBound(c.Area.Max))
	m.inputs[fieldPlanMin].SetValue(formatBound(c.Plan.Min))
	m.inputs[fieldPlanMax].SetValue(formatBound(c.Plan.Max))
	m.inputs[fieldStart].SetValue(formatDate(c.StartFrom))
	m.inputs[fieldEnd].SetValue(formatDate(c.EndUntil))
}

func (m *FilterModel) updateFocus() {
	for f := field(0); f < fieldCount; f++ {
		if f.isSelector() {
			continue
		}
		if f == m.focused {
			m.inputs[f].Focus()
		} else {
			m.inputs[f].Blur()
		}
	}
}

func (m *FilterModel) selectorValue(f field) string {
	switch f {
	case fieldProvince:
		return models.Provinces[m.province].String()
	case fieldCategory:
		return models.Categories[m.category].String()
	case fieldCertifier:
		if m.certifier == 0 {
			return "전체"
		}
		return m.dashboard.Certifiers()[m.certifier-1]
	}
	return ""
}

func (m *FilterModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle := GetAdaptiveStyles(m.width)

	title := adaptiveTitleStyle.Render("🔎 검색 조건")

	var rows []string
	for f := field(0); f < fieldCount; f++ {
		label := labelStyle.Render(fieldLabels[f])
		if f == m.focused {
			label = focusedLabelStyle.Render(fieldLabels[f])
		}

		var value string
		if f.isSelector() {
			value = selectorStyle.Render("◀ " + m.selectorValue(f) + " ▶")
		} else {
			value = m.inputs[f].View()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}
	form := adaptiveFormStyle.Render(strings.Join(rows, "\n"))

	status := summaryStyle.Render(fmt.Sprintf("검색 결과: %d / %d건",
		len(m.dashboard.Filtered()), len(m.dashboard.Records())))
	if m.warning != "" {
		status += "\n" + warningStyle.Render("⚠ "+m.warning)
	}

	help := helpStyle.Render("Tab/Shift+Tab: 이동 • ←/→: 선택 변경 • Ctrl+R: 초기화 • Enter: 결과 보기 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, status, help)
}

func formatBound(v float64) string {
	if math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006.01.02")
}
