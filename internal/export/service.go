package export

import (
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
	"go.uber.org/zap"
)

const (
	DefaultPath = "filtered_data.xlsx"
	sheetName   = "Sheet1"
	dateLayout  = "2006-01-02"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Header is the column order of every export: source columns, then derived ones.
var Header = []string{
	models.ColAddress,
	models.ColRegion,
	models.ColProduct,
	models.ColCategory,
	models.ColCertifier,
	models.ColArea,
	models.ColPlan,
	models.ColPeriod,
	models.ColProvince,
	models.ColTownship,
	models.ColVillage,
	models.ColCertStart,
	models.ColCertEnd,
}

type exportRow struct {
	Address   *string `csv:"주소"`
	Region    *string `csv:"지역"`
	Product   *string `csv:"대표품목"`
	Category  *string `csv:"인증분류"`
	Certifier *string `csv:"인증기관"`
	Area      *string `csv:"재배면적(제곱미터)"`
	Plan      *string `csv:"인증계획량(kg)"`
	Period    string  `csv:"인증기간"`
	Province  *string `csv:"시도"`
	Township  *string `csv:"읍면"`
	Village   *string `csv:"리동"`
	CertStart string  `csv:"인증시작"`
	CertEnd   string  `csv:"인증끝"`
}

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Write replaces the file at path with records. The format follows the
// extension (.xlsx or .csv). On failure any existing file is left untouched.
func (s *Service) Write(records []models.Record, path string) error {
	var encode func(io.Writer, []models.Record) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		encode = writeWorkbook
	case ".csv":
		encode = writeCSV
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpPath := tmp.Name()

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set export file mode: %w", err)
	}

	if err := encode(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	s.logger.Info("Exported filtered records", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func writeWorkbook(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			text(r.Address),
			text(r.Region),
			text(r.Product),
			text(r.Category),
			text(r.Certifier),
			number(r.Area),
			number(r.Plan),
			r.Period,
			text(r.Province),
			text(r.Township),
			text(r.Village),
			r.CertStart.Format(dateLayout),
			r.CertEnd.Format(dateLayout),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

func writeCSV(w io.Writer, records []models.Record) error {
	rows := make([]exportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, exportRow{
			Address:   r.Address,
			Region:    r.Region,
			Product:   r.Product,
			Category:  r.Category,
			Certifier: r.Certifier,
			Area:      formatNumber(r.Area),
			Plan:      formatNumber(r.Plan),
			Period:    r.Period,
			Province:  r.Province,
			Township:  r.Township,
			Village:   r.Village,
			CertStart: r.CertStart.Format(dateLayout),
			CertEnd:   r.CertEnd.Format(dateLayout),
		})
	}

	csvWriter := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(csvWriter)
	if len(rows) == 0 {
		if err := encoder.EncodeHeader(exportRow{}); err != nil {
			return err
		}
	} else if err := encoder.Encode(rows); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// text and number map nil to an untyped nil so the cell stays blank.
func text(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func number(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func formatNumber(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'f', -1, 64)
	return &s
}
