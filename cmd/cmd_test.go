package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"agricert/internal/models"
	"agricert/internal/sheet"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "주소,대표품목,인증분류,인증기관,재배면적(제곱미터),인증계획량(kg),인증기간\n" +
	"서울 강서구 개화동,쌀,유기농,친환경인증원,100,3000,2021.03.15 ~ 2024.03.14\n" +
	"부산 기장군 장안읍,블루베리,무농약,부산인증,200,700,2022.06.01 ~ 2023.05.31\n" +
	"서울 노원구 상계동,배,유기농,부산인증,50,150,2020.01.01 ~ 2022.12.31\n"

func writeData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))
	return path
}

func newFilterCommand(t *testing.T, args ...string) (*cobra.Command, *filterFlags) {
	t.Helper()
	var f filterFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &f
}

func TestFilterFlagsDefaultToBounds(t *testing.T) {
	records, err := sheet.Load(writeData(t))
	require.NoError(t, err)

	cmd, f := newFilterCommand(t)
	c, err := f.criteria(cmd, records)
	require.NoError(t, err)

	assert.Equal(t, 50.0, c.Area.Min)
	assert.Equal(t, 200.0, c.Area.Max)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), c.StartFrom)
	assert.Equal(t, models.AllProvinces, c.Province)
}

func TestFilterFlagsOverrides(t *testing.T) {
	records, err := sheet.Load(writeData(t))
	require.NoError(t, err)

	cmd, f := newFilterCommand(t, "--province", "서울", "--area-min", "0", "--end", "2023.1.1")
	c, err := f.criteria(cmd, records)
	require.NoError(t, err)

	assert.Equal(t, models.Seoul, c.Province)
	assert.Equal(t, 0.0, c.Area.Min, "an explicit zero is not treated as unset")
	assert.Equal(t, 200.0, c.Area.Max)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), c.EndUntil)
}

func TestFilterFlagsRejectUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"province", []string{"--province", "경상"}},
		{"category", []string{"--category", "관행"}},
		{"start", []string{"--start", "2021-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := newFilterCommand(t, tt.args...)
			_, err := f.criteria(cmd, nil)
			assert.Error(t, err)
		})
	}
}

func TestRunExport(t *testing.T) {
	dataFile = writeData(t)
	outputFile = filepath.Join(t.TempDir(), "out.csv")
	fromDB = false
	exportFilters = filterFlags{province: "서울"}
	t.Cleanup(func() {
		exportFilters = filterFlags{}
		outputFile = ""
	})

	var out bytes.Buffer
	exportCmd.SetOut(&out)
	require.NoError(t, runExport(exportCmd, nil))

	assert.Contains(t, out.String(), "Saved 2 of 3 records")

	exported, err := sheet.Load(outputFile)
	require.NoError(t, err)
	require.Len(t, exported, 2)
	assert.Equal(t, "쌀", models.Text(exported[0].Product))
	assert.Equal(t, "배", models.Text(exported[1].Product))
}

func TestRunSummary(t *testing.T) {
	dataFile = writeData(t)
	fromDB = false
	summaryFilters = filterFlags{}
	summaryRegion = "서울"
	summaryTop = 1
	t.Cleanup(func() { summaryRegion = "" })

	var out bytes.Buffer
	summaryCmd.SetOut(&out)
	require.NoError(t, runSummary(summaryCmd, nil))

	text := out.String()
	assert.Contains(t, text, "3 of 3 records match")
	assert.Contains(t, text, "시도별 재배면적 합계")
	assert.Contains(t, text, "서울 지역의 인증계획량 분포")
	assert.Contains(t, text, "기타")
	assert.True(t, strings.Index(text, "쌀") < strings.Index(text, "기타"))
}

func TestRunSummaryWithoutProvinces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "주소,대표품목,인증분류,인증기관,재배면적(제곱미터),인증계획량(kg),인증기간\n" +
		",쌀,유기농,친환경인증원,100,3000,2021.03.15 ~ 2024.03.14\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	dataFile = path
	fromDB = false
	summaryFilters = filterFlags{}
	summaryRegion = ""
	summaryTop = 5

	var out bytes.Buffer
	summaryCmd.SetOut(&out)
	assert.NotPanics(t, func() {
		require.NoError(t, runSummary(summaryCmd, nil))
	})

	text := out.String()
	assert.Contains(t, text, "1 of 1 records match")
	assert.Contains(t, text, "skipping the product breakdown")
	assert.NotContains(t, text, "지역의 인증계획량 분포")
}
