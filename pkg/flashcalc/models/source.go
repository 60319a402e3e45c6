// Package models defines data structures shared across extraction, mapping
// and calculation.
package models

import "fmt"

// SourceItem is one data row of a source sheet, identified by sheet and item
// name and holding one value per canonical column. A nil column value means
// the column exists but carries no data. Items are immutable once extracted;
// re-extraction rebuilds them from scratch.
type SourceItem struct {
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// Name is the item (row) name, e.g. an account name.
	Name string `json:"name"`
	// Code is the optional item code, e.g. an account code.
	Code string `json:"code,omitempty"`
	// Row is the 1-based row the item was extracted from.
	Row int `json:"row"`
	// Values maps canonical column name to the cell value.
	Values map[string]*float64 `json:"values"`
}

// NewSourceItem creates a source item with an empty value map.
func NewSourceItem(sheet, name, code string, row int) *SourceItem {
	return &SourceItem{
		Sheet:  sheet,
		Name:   name,
		Code:   code,
		Row:    row,
		Values: make(map[string]*float64),
	}
}

// SetValue stores a column value. Pass nil for a present-but-empty cell.
func (s *SourceItem) SetValue(column string, value *float64) {
	s.Values[column] = value
}

// Reference returns the canonical reference string for one of the item's
// columns, suitable for insertion into a mapping formula.
func (s *SourceItem) Reference(column string) string {
	return fmt.Sprintf("[%s]![%s]![%s]", s.Sheet, s.Name, column)
}
