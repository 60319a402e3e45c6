package models

import "fmt"

// TargetItem is one flash-report line awaiting a computed value.
type TargetItem struct {
	// ID is stable across runs, derived from sheet name and row number.
	ID string `json:"id"`
	// Name is the cleaned display text, markers and numbering stripped.
	Name string `json:"name"`
	// OriginalText is the raw cell text the item was extracted from.
	OriginalText string `json:"original_text"`
	// Sheet is the flash-report sheet name.
	Sheet string `json:"sheet"`
	// Row is the 1-based row number.
	Row int `json:"row"`
	// RawIndentLevel is the count of leading whitespace runes.
	RawIndentLevel int `json:"raw_indent_level"`
	// Level is the resolved nesting level after marker overrides.
	Level int `json:"level"`
	// HierarchicalLevel is the 1-based depth in the item tree.
	HierarchicalLevel int `json:"hierarchical_level"`
	// ParentID is empty for root items.
	ParentID string `json:"parent_id,omitempty"`
	// ChildrenIDs lists direct children in row order.
	ChildrenIDs []string `json:"children_ids,omitempty"`
	// TargetCell is the cell address the calculated value is written to.
	TargetCell string `json:"target_cell,omitempty"`
}

// TargetID derives the stable item id from sheet name and row number.
func TargetID(sheet string, row int) string {
	return fmt.Sprintf("%s_%d", sheet, row)
}
