package excel

// ExcelConfig holds configuration for reading spreadsheets
type ExcelConfig struct {
	SheetName      string         `json:"sheet_name"` // empty means the first sheet
	CoercionConfig CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		CoercionConfig: DefaultCoercionConfig(),
	}
}
