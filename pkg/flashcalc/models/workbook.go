package models

// WorkbookData is the workbook-level container with everything one
// extraction pass produced: source items per sheet, target items of the
// flash-report sheet, and the mapping formulas keyed by target id.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to its extracted data.
	Sheets map[string]SheetData `json:"sheets"`
	// Targets lists flash-report line items in row order.
	Targets []*TargetItem `json:"targets"`
	// Formulas maps target id to its mapping formula.
	Formulas map[string]*MappingFormula `json:"formulas,omitempty"`
}

// SourceItems flattens every sheet's source items into one slice.
func (w *WorkbookData) SourceItems() []*SourceItem {
	var items []*SourceItem
	for _, sheet := range w.Sheets {
		items = append(items, sheet.Sources...)
	}
	return items
}

// Target returns the target item with the given id, or nil.
func (w *WorkbookData) Target(id string) *TargetItem {
	for _, t := range w.Targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
