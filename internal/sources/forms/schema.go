package forms

// Export represents a parsed form-submission export: one header row followed
// by data rows. Rows may be ragged (trailing empty cells are often omitted
// by sheet exporters), so cells are addressed defensively by index.
type Export struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the export carries no data rows.
func (e *Export) Empty() bool { return e == nil || len(e.Rows) == 0 }
