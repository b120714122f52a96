package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"statreport/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName names the sheet WriteXLSX creates.
const DefaultSheetName = "Data"

// WriteFile writes ds as .xlsx or .csv depending on the extension of name.
func WriteFile(w io.Writer, name string, ds *dataset.Dataset) error {
	kind, err := fileType(name)
	if err != nil {
		return err
	}
	if kind == "csv" {
		return WriteCSV(w, ds)
	}
	return WriteXLSX(w, ds, strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
}

// WriteXLSX writes ds as a single-sheet workbook with headers in row 1.
// Numeric cells are stored as numbers and missing cells are left empty.
func WriteXLSX(w io.Writer, ds *dataset.Dataset, sheet string) error {
	if sheet == "" || len(sheet) > 31 {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, ds.Width())
	for i, name := range ds.Names() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	columns := ds.Columns()
	for r := 0; r < ds.Rows(); r++ {
		row := make([]interface{}, len(columns))
		for c, col := range columns {
			switch {
			case col.IsMissing(r):
				row[c] = nil
			case col.IsNumeric():
				row[c] = col.Numbers[r]
			default:
				row[c] = col.Labels[r]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes ds as comma-separated text with a header line.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names()); err != nil {
		return err
	}
	columns := ds.Columns()
	for r := 0; r < ds.Rows(); r++ {
		row := make([]string, len(columns))
		for c, col := range columns {
			if !col.IsMissing(r) {
				row[c] = col.Format(r)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
