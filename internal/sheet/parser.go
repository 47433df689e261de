package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"agricert/internal/models"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidNumber     = errors.New("invalid number")
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{
	models.ColAddress,
	models.ColProduct,
	models.ColCategory,
	models.ColCertifier,
	models.ColArea,
	models.ColPlan,
	models.ColPeriod,
}

// LoadError reports a fatal problem with the input file. Row is the 1-based
// data row (0 for the header or the file itself).
type LoadError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row == 0 && e.Column == "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	case e.Row == 0:
		return fmt.Sprintf("load %s: column %q: %v", e.Path, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: row %d column %q: %v", e.Path, e.Row, e.Column, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// rawRow is one spreadsheet row before typing and derivation.
type rawRow struct {
	Address   string `csv:"주소"`
	Region    string `csv:"지역"`
	Product   string `csv:"대표품목"`
	Category  string `csv:"인증분류"`
	Certifier string `csv:"인증기관"`
	Area      string `csv:"재배면적(제곱미터)"`
	Plan      string `csv:"인증계획량(kg)"`
	Period    string `csv:"인증기간"`

	// row is the 1-based data row as shown in the source file.
	row int
}

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// Load reads and derives every record of the file at path.
func Load(path string) ([]models.Record, error) {
	return NewParser(path).ParseRecords()
}

// ParseRecords dispatches on the file extension. Any error is a *LoadError.
func (p *Parser) ParseRecords() ([]models.Record, error) {
	var (
		rows []rawRow
		err  error
	)
	switch strings.ToLower(filepath.Ext(p.filename)) {
	case ".xlsx", ".xlsm":
		rows, err = p.readWorkbook()
	case ".csv":
		rows, err = p.readCSV()
	default:
		return nil, &LoadError{Path: p.filename, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(p.filename))}
	}
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for _, raw := range rows {
		record, err := p.toRecord(raw.row, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *Parser) readWorkbook() ([]rawRow, error) {
	f, err := excelize.OpenFile(p.filename)
	if err != nil {
		return nil, &LoadError{Path: p.filename, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: p.filename, Err: errors.New("workbook has no sheets")}
	}

	cells, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Path: p.filename, Err: fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)}
	}
	if len(cells) == 0 {
		return nil, &LoadError{Path: p.filename, Err: errors.New("sheet is empty")}
	}

	index := make(map[string]int, len(cells[0]))
	for i, h := range cells[0] {
		index[strings.TrimSpace(h)] = i
	}
	if err := p.checkHeader(index); err != nil {
		return nil, err
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]rawRow, 0, len(cells)-1)
	for i, row := range cells[1:] {
		if isBlank(row) {
			continue
		}
		rows = append(rows, rawRow{
			row:       i + 1,
			Address:   cell(row, models.ColAddress),
			Region:    cell(row, models.ColRegion),
			Product:   cell(row, models.ColProduct),
			Category:  cell(row, models.ColCategory),
			Certifier: cell(row, models.ColCertifier),
			Area:      cell(row, models.ColArea),
			Plan:      cell(row, models.ColPlan),
			Period:    cell(row, models.ColPeriod),
		})
	}
	return rows, nil
}

func (p *Parser) readCSV() ([]rawRow, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, &LoadError{Path: p.filename, Err: fmt.Errorf("failed to open CSV file: %w", err)}
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	// Spreadsheet tools prepend a UTF-8 BOM when saving CSV.
	if bom, err := reader.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		reader.Discard(3)
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return nil, &LoadError{Path: p.filename, Err: fmt.Errorf("failed to create CSV decoder: %w", err)}
	}

	index := make(map[string]int)
	for i, h := range decoder.Header() {
		index[strings.TrimSpace(h)] = i
	}
	if err := p.checkHeader(index); err != nil {
		return nil, err
	}

	var rows []rawRow
	for line := 1; ; line++ {
		var raw rawRow
		if err := decoder.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			return nil, &LoadError{Path: p.filename, Row: line, Err: fmt.Errorf("failed to decode CSV: %w", err)}
		}
		raw.row = line
		rows = append(rows, raw)
	}
	return rows, nil
}

func (p *Parser) checkHeader(index map[string]int) error {
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return &LoadError{Path: p.filename, Column: col, Err: ErrMissingColumn}
		}
	}
	return nil
}

func (p *Parser) toRecord(row int, raw rawRow) (models.Record, error) {
	record := models.Record{
		Address:   nullableText(raw.Address),
		Region:    nullableText(raw.Region),
		Product:   nullableText(raw.Product),
		Category:  nullableText(raw.Category),
		Certifier: nullableText(raw.Certifier),
		Period:    strings.TrimSpace(raw.Period),
	}

	var err error
	if record.Area, err = nullableNumber(raw.Area); err != nil {
		return models.Record{}, &LoadError{Path: p.filename, Row: row, Column: models.ColArea, Err: err}
	}
	if record.Plan, err = nullableNumber(raw.Plan); err != nil {
		return models.Record{}, &LoadError{Path: p.filename, Row: row, Column: models.ColPlan, Err: err}
	}
	if err := record.Derive(); err != nil {
		return models.Record{}, &LoadError{Path: p.filename, Row: row, Column: models.ColPeriod, Err: err}
	}
	return record, nil
}

func nullableText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullableNumber(s string) (*float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return &v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
