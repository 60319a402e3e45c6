package models

// SheetData holds the extracted content of a single source sheet.
type SheetData struct {
	// Type is the detected sheet type key, e.g. "科目余额表".
	Type string `json:"type,omitempty"`
	// Columns lists canonical column names aligned with data columns.
	Columns []string `json:"columns,omitempty"`
	// Sources contains the sheet's extracted source items in row order.
	Sources []*SourceItem `json:"sources,omitempty"`
}
