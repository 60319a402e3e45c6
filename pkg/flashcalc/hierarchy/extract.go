package hierarchy

import (
	"strings"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
)

// RawRow is one flash-report row before hierarchy analysis.
type RawRow struct {
	// Seq is the optional sequence label column, kept for diagnostics.
	Seq string
	// Text is the raw item cell text including leading indentation.
	Text string
	// Row is the 1-based sheet row number.
	Row int
}

// Extract builds target items from raw rows and links them into a forest.
//
// Each row's level comes from its indentation unless a keyword marker
// overrides it (see levelRules). Parents are assigned with a stack walk in
// row order: pop entries whose level is >= the current row's level, then
// the remaining top (if any) is the parent. The result is consistent with
// single-pass indentation semantics; no backtracking across rows.
func Extract(sheet string, rows []RawRow) []*models.TargetItem {
	var items []*models.TargetItem
	var stack []*models.TargetItem

	for _, row := range rows {
		trimmed := strings.TrimSpace(row.Text)
		if trimmed == "" {
			continue
		}
		name := cleanName(trimmed)
		if name == "" {
			continue
		}

		indent := rawIndent(row.Text)
		item := &models.TargetItem{
			ID:             models.TargetID(sheet, row.Row),
			Name:           name,
			OriginalText:   row.Text,
			Sheet:          sheet,
			Row:            row.Row,
			RawIndentLevel: indent,
			Level:          resolveLevel(trimmed, indent),
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= item.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			item.ParentID = parent.ID
			item.HierarchicalLevel = parent.HierarchicalLevel + 1
			parent.ChildrenIDs = append(parent.ChildrenIDs, item.ID)
		} else {
			item.HierarchicalLevel = 1
		}
		stack = append(stack, item)

		items = append(items, item)
	}
	return items
}
