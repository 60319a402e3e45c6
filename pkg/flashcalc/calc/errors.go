// Package calc resolves formula references against the source index and
// evaluates mapping formulas.
package calc

import "fmt"

// ResolveErrorKind classifies reference resolution failures.
type ResolveErrorKind string

const (
	// UnresolvedItem means no source item matches (sheet, item).
	UnresolvedItem ResolveErrorKind = "unresolved_item"
	// UnresolvedColumn means the item exists but lacks the column.
	UnresolvedColumn ResolveErrorKind = "unresolved_column"
	// MissingValue means the column exists but holds no data. Kept distinct
	// from UnresolvedColumn for diagnosability.
	MissingValue ResolveErrorKind = "missing_value"
)

// ResolveError reports which reference segment failed to resolve.
type ResolveError struct {
	Kind   ResolveErrorKind
	Sheet  string
	Item   string
	Column string
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case UnresolvedItem:
		return fmt.Sprintf("unresolved item [%s]![%s]", e.Sheet, e.Item)
	case UnresolvedColumn:
		return fmt.Sprintf("unresolved column [%s]![%s]![%s]", e.Sheet, e.Item, e.Column)
	default:
		return fmt.Sprintf("missing value for [%s]![%s]![%s]", e.Sheet, e.Item, e.Column)
	}
}

// EvalError reports an arithmetic failure during evaluation.
type EvalError struct {
	// Kind is currently always "division_by_zero".
	Kind string
	// Pos is the byte offset of the failing operator in the formula text.
	Pos int
}

const divisionByZero = "division_by_zero"

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Pos)
}

// IndexError reports a fatal source-index construction failure. All
// resolutions against an index with duplicate keys would be unsound, so the
// build aborts on the first duplicate.
type IndexError struct {
	// Kind is currently always "duplicate_source_key".
	Kind  string
	Sheet string
	Item  string
}

const duplicateSourceKey = "duplicate_source_key"

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: [%s]![%s]", e.Kind, e.Sheet, e.Item)
}
