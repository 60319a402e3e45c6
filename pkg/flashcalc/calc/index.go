package calc

import "github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"

type sourceKey struct {
	sheet string
	item  string
}

// SourceIndex is the read-only lookup structure for reference resolution,
// keyed by (sheet, item name). It is frozen once built; a re-extraction
// produces a fresh index.
type SourceIndex struct {
	items map[sourceKey]*models.SourceItem
}

// BuildIndex indexes source items by (sheet, item name). A duplicate key
// within one extraction pass is a fatal *IndexError.
func BuildIndex(sources []*models.SourceItem) (*SourceIndex, error) {
	idx := &SourceIndex{items: make(map[sourceKey]*models.SourceItem, len(sources))}
	for _, s := range sources {
		key := sourceKey{sheet: s.Sheet, item: s.Name}
		if _, exists := idx.items[key]; exists {
			return nil, &IndexError{Kind: duplicateSourceKey, Sheet: s.Sheet, Item: s.Name}
		}
		idx.items[key] = s
	}
	return idx, nil
}

// Lookup returns the source item for (sheet, item), if indexed.
func (idx *SourceIndex) Lookup(sheet, item string) (*models.SourceItem, bool) {
	s, ok := idx.items[sourceKey{sheet: sheet, item: item}]
	return s, ok
}

// Len returns the number of indexed items.
func (idx *SourceIndex) Len() int { return len(idx.items) }

// Sheets returns the distinct sheet names present in the index.
func (idx *SourceIndex) Sheets() []string {
	seen := make(map[string]bool)
	var sheets []string
	for key := range idx.items {
		if !seen[key.sheet] {
			seen[key.sheet] = true
			sheets = append(sheets, key.sheet)
		}
	}
	return sheets
}
