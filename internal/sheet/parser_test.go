package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"agricert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\ufeff주소,지역,대표품목,인증분류,인증기관,재배면적(제곱미터),인증계획량(kg),인증기간\n" +
	"서울 강서구 개화동,서울,쌀,유기농,친환경인증원,\"1,200\",3000,2021.03.15 ~ 2024.03.14\n" +
	"경기 양평군 양서면 목왕리,경기,사과,무농약,한국유기인증,500.5,,2022.1.1 ~ 2023.12.31\n" +
	",,배추,무농약,,800,1500,2020.05.01 ~ 2023.04.30\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadCSV(t *testing.T) {
	records, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "서울", models.Text(first.Province))
	assert.Equal(t, "강서구", models.Text(first.Township))
	assert.Equal(t, "개화동", models.Text(first.Village))
	assert.Equal(t, 1200.0, models.Number(first.Area))
	assert.Equal(t, 3000.0, models.Number(first.Plan))
	assert.Equal(t, 2021, first.CertStart.Year())
	assert.Equal(t, 2024, first.CertEnd.Year())

	second := records[1]
	assert.Equal(t, "양서면 목왕리", models.Text(second.Village))
	assert.Equal(t, 500.5, models.Number(second.Area))
	assert.Nil(t, second.Plan)

	third := records[2]
	assert.Nil(t, third.Address)
	assert.Nil(t, third.Province)
	assert.Nil(t, third.Certifier)
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"주소", "대표품목", "인증분류", "인증기관", "재배면적(제곱미터)", "인증계획량(kg)", "인증기간"},
		{"부산 기장군 장안읍", "블루베리", "유기농", "부산인증", 330, 700, "2021.06.01 ~ 2022.05.31"},
		{},
		{"전라남도 해남군", "배추", "무농약", "남도인증", 12000.5, 50000, "2020.01.01 ~ 2021.12.31"},
	})

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "부산", models.Text(records[0].Province))
	assert.Equal(t, 330.0, models.Number(records[0].Area))
	assert.Nil(t, records[0].Region)
	assert.Equal(t, "해남군", models.Text(records[1].Township))
	assert.Nil(t, records[1].Village)
	assert.Equal(t, 12000.5, models.Number(records[1].Area))
}

func TestLoadMalformedPeriodIsFatal(t *testing.T) {
	content := "주소,대표품목,인증분류,인증기관,재배면적(제곱미터),인증계획량(kg),인증기간\n" +
		"서울 강서구,쌀,유기농,기관,1,1,2021.03.15 ~ 2024.03.14\n" +
		"서울 강서구,쌀,유기농,기관,1,1,2021.03.15 - 2024.03.14\n"

	_, err := Load(writeFile(t, "data.csv", content))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 2, loadErr.Row)
	assert.Equal(t, models.ColPeriod, loadErr.Column)
	assert.True(t, errors.Is(err, models.ErrMalformedPeriod))
}

func TestLoadWorkbookErrorRowCountsBlankRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"주소", "대표품목", "인증분류", "인증기관", "재배면적(제곱미터)", "인증계획량(kg)", "인증기간"},
		{"부산 기장군 장안읍", "블루베리", "유기농", "부산인증", 330, 700, "2021.06.01 ~ 2022.05.31"},
		{},
		{"전라남도 해남군", "배추", "무농약", "남도인증", 100, 500, "2020.01.01"},
	})

	_, err := Load(path)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 3, loadErr.Row, "row matches the sheet, blank rows included")
	assert.Equal(t, models.ColPeriod, loadErr.Column)
}

func TestLoadMissingColumn(t *testing.T) {
	content := "주소,대표품목,인증분류,재배면적(제곱미터),인증계획량(kg),인증기간\n"

	_, err := Load(writeFile(t, "data.csv", content))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, models.ColCertifier, loadErr.Column)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestLoadInvalidNumber(t *testing.T) {
	content := "주소,대표품목,인증분류,인증기관,재배면적(제곱미터),인증계획량(kg),인증기간\n" +
		"서울 강서구,쌀,유기농,기관,넓음,1,2021.03.15 ~ 2024.03.14\n"

	_, err := Load(writeFile(t, "data.csv", content))
	assert.True(t, errors.Is(err, ErrInvalidNumber))
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "data.xls", "binary"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"))

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
