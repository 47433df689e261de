package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"agricert/internal/export"
	"agricert/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(t *testing.T) []models.Record {
	t.Helper()
	rows := []struct {
		address, product, category, certifier string
		area, plan                            float64
		period                                string
	}{
		{"서울 강서구 개화동", "쌀", "유기농", "친환경인증원", 100, 3000, "2021.03.15 ~ 2024.03.14"},
		{"부산 기장군 장안읍", "블루베리", "무농약", "부산인증", 200, 700, "2022.06.01 ~ 2023.05.31"},
		{"서울 노원구 상계동", "배", "유기농", "부산인증", 50, 150, "2020.01.01 ~ 2022.12.31"},
		{"강원 홍천군 서석면", "감자", "무농약", "강원인증", 900, 8000, "2019.04.01 ~ 2021.03.31"},
	}

	records := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		rec := models.Record{
			Address:   models.StringPtr(r.address),
			Product:   models.StringPtr(r.product),
			Category:  models.StringPtr(r.category),
			Certifier: models.StringPtr(r.certifier),
			Area:      models.FloatPtr(r.area),
			Plan:      models.FloatPtr(r.plan),
			Period:    r.period,
		}
		require.NoError(t, rec.Derive())
		records = append(records, rec)
	}
	return records
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestDashboardStartsUnfiltered(t *testing.T) {
	records := sampleRecords(t)
	d := NewDashboard(records)

	assert.Len(t, d.Filtered(), len(records))
	assert.Equal(t, []string{"서울", "부산", "강원"}, d.Regions())
	assert.Equal(t, []string{"친환경인증원", "부산인증", "강원인증"}, d.Certifiers())
}

func TestFilterProvinceSelector(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)

	press(m, tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, models.Seoul, d.Criteria().Province)
	assert.Len(t, d.Filtered(), 2)

	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, models.Jeju, d.Criteria().Province, "selector wraps around")
	assert.Empty(t, d.Filtered())
}

func TestFilterTextInputRecomputes(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)

	press(m, tea.KeyMsg{Type: tea.KeyTab}, keys("기장"))

	assert.Equal(t, "기장", d.Criteria().Address)
	require.Len(t, d.Filtered(), 1)
	assert.Equal(t, "블루베리", models.Text(d.Filtered()[0].Product))
}

func TestFilterCertifierSelector(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)

	for i := 0; i < int(fieldCertifier); i++ {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, "부산인증", d.Criteria().Certifier)
	assert.Len(t, d.Filtered(), 2)
}

func TestFilterInvalidNumberKeepsCriteria(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)
	before := d.Criteria()

	for i := 0; i < int(fieldAreaMin); i++ {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	press(m, keys("x"))

	assert.Equal(t, before, d.Criteria())
	assert.NotEmpty(t, m.warning)
	assert.Contains(t, m.View(), "숫자가 아닙니다")
}

func TestFilterEnterWithInvalidInput(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	var m tea.Model = NewModel(d, export.NewService(nil), "")
	m = press(m, ScreenChangeMsg{Screen: FilterScreen})

	for i := 0; i < int(fieldPlanMax); i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = press(m, keys("kg"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ErrorMsg{}, msg)

	m = press(m, msg)
	assert.Equal(t, FilterScreen, m.(Model).Screen())
	assert.Contains(t, m.View(), "오류")
}

func TestFilterDateInput(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)

	m.inputs[fieldStart].SetValue("2021.01.01")
	m.apply()

	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), d.Criteria().StartFrom)
	assert.Len(t, d.Filtered(), 2)
}

func TestFilterDateAcceptsSingleDigitParts(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewFilterModel(d)

	m.inputs[fieldStart].SetValue("2021.1.1")
	m.apply()
	assert.Empty(t, m.warning)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), d.Criteria().StartFrom)

	m.inputs[fieldStart].SetValue("2021-01-01")
	m.apply()
	assert.Contains(t, m.warning, "YYYY.M.D")
}

func TestFilterReset(t *testing.T) {
	records := sampleRecords(t)
	d := NewDashboard(records)
	m := NewFilterModel(d)

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Len(t, d.Filtered(), len(records))
	assert.Equal(t, 0, m.province)
	assert.Equal(t, "50", m.inputs[fieldAreaMin].Value())
	assert.Equal(t, "900", m.inputs[fieldAreaMax].Value())
}

func TestChartModelRegionSelection(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewChartModel(d)

	assert.Equal(t, "서울", m.Region())
	require.NotNil(t, m.share)
	assert.Len(t, m.share.Points, 2)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "부산", m.Region())
	assert.Equal(t, "블루베리", m.share.Points[0].Label)

	view := m.View()
	assert.Contains(t, view, "시도별 재배면적 합계")
	assert.Contains(t, view, "부산 지역의 인증계획량 분포")
}

func TestChartModelKeepsRegionAcrossRefresh(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewChartModel(d)
	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, "강원", m.Region())

	c := d.Criteria()
	c.Category = models.NoPesticide
	d.SetCriteria(c)
	m.Refresh()

	assert.Equal(t, []string{"부산", "강원"}, m.regions)
	assert.Equal(t, "강원", m.Region())
}

func TestTableRefresh(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewTableModel(d)
	assert.Len(t, m.table.Rows(), 4)

	c := d.Criteria()
	c.Province = models.Gangwon
	d.SetCriteria(c)
	m.Refresh()

	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "강원", m.table.Rows()[0][0])
	assert.Contains(t, m.View(), "1건")
}

func TestExportWritesFilteredView(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	c := d.Criteria()
	c.Province = models.Seoul
	d.SetCriteria(c)

	path := filepath.Join(t.TempDir(), "filtered_data.csv")
	m := NewExportModel(d, export.NewService(nil), path)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ExportProgressState, m.state)

	press(m, cmd())

	assert.Equal(t, ExportResultState, m.state)
	require.NoError(t, m.Result().Error)
	assert.Equal(t, 2, m.Result().Records)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestExportFailureIsNonFatal(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewExportModel(d, export.NewService(nil), filepath.Join(t.TempDir(), "out.txt"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	press(m, cmd())

	require.Error(t, m.Result().Error)
	assert.Contains(t, m.View(), "저장 실패")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ExportInputState, m.state)
}

func TestModelScreenRouting(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	var m tea.Model = NewModel(d, export.NewService(nil), "")

	m = press(m, ScreenChangeMsg{Screen: FilterScreen})
	assert.Equal(t, FilterScreen, m.(Model).Screen())

	// "q" is text input on the filter screen, not quit.
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, keys("q"))
	assert.Equal(t, FilterScreen, m.(Model).Screen())
	assert.Equal(t, "q", d.Criteria().Address)

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, MenuScreen, m.(Model).Screen())

	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestMenuSelection(t *testing.T) {
	d := NewDashboard(sampleRecords(t))
	m := NewMenuModel(d)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: TableScreen}, cmd())
}
