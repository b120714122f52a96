package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"statreport/domain/core"
	"statreport/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader reads Excel and CSV files into datasets. Column kinds are
// decided here, once, and never re-inferred downstream.
type DataReader struct {
	config  ExcelConfig
	coercer *TypeCoercer
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: NewTypeCoercer(config.CoercionConfig),
	}
}

// fileType maps a file name onto "xlsx" or "csv".
func fileType(name string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		return "xlsx", nil
	case ".csv":
		return "csv", nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedInput, ext)
	}
}

// Supported reports whether name has an extension the reader accepts.
func Supported(name string) bool {
	_, err := fileType(name)
	return err == nil
}

// LoadFile reads a dataset from disk.
func (r *DataReader) LoadFile(ctx context.Context, path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return r.Load(ctx, filepath.Base(path), f)
}

// Load reads a dataset from src; name is used for the file type and as
// the dataset name.
func (r *DataReader) Load(ctx context.Context, name string, src io.Reader) (*dataset.Dataset, error) {
	kind, err := fileType(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Starting to read %s file: %s", kind, name)
	start := time.Now()

	var rows [][]string
	switch kind {
	case "csv":
		rows, err = r.readCSVRows(src)
	default:
		rows, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, core.NewMalformedInputError(name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := r.processRows(rows)
	if err != nil {
		return nil, core.NewMalformedInputError(name, err)
	}

	ds, err := r.buildDataset(name, table)
	if err != nil {
		return nil, core.NewMalformedInputError(name, err)
	}
	log.Printf("[DataReader] %s processed in %.2fms (%d columns, %d rows)",
		name, float64(time.Since(start).Nanoseconds())/1e6, ds.Width(), ds.Rows())
	return ds, nil
}

// readExcelRows reads the configured sheet, or the first one, as raw cell text
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// readCSVRows reads CSV data; rows may have differing lengths
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	return rows, nil
}

// processRows turns raw rows into a header plus rectangular data rows.
// Fully blank rows are skipped; short rows are padded; cells beyond the
// header are dropped.
func (r *DataReader) processRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := normalizeHeaders(rows[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("header row is empty")
	}

	table := &RawTable{Headers: headers}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(headers))
		for j := range cells {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func (r *DataReader) buildDataset(name string, table *RawTable) (*dataset.Dataset, error) {
	columns := make([]dataset.Column, table.Width())
	cells := make([]string, len(table.Rows))
	for c, header := range table.Headers {
		for i := range table.Rows {
			cells[i] = table.Cell(i, c)
		}
		columns[c] = r.coercer.Column(header, cells)
	}
	return dataset.New(name, columns...)
}

// normalizeHeaders trims names, names empty ones "Unnamed: i" and
// suffixes duplicates with ".1", ".2" and so on.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
