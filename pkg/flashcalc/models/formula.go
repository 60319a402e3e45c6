package models

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/formula"
)

// FormulaStatus is the lifecycle state of a mapping formula.
type FormulaStatus string

const (
	// StatusUnparsed means the formula text has not been parsed yet.
	StatusUnparsed FormulaStatus = "unparsed"
	// StatusParsed means the text parsed into a valid expression tree.
	StatusParsed FormulaStatus = "parsed"
	// StatusResolved means the expression evaluated to a value.
	StatusResolved FormulaStatus = "resolved"
	// StatusFailed means parsing, resolution or evaluation failed.
	StatusFailed FormulaStatus = "failed"
)

// MappingFormula binds a formula text to a target item. The parsed
// expression is built lazily on first use and cached; replacing the text
// discards the cache and resets the status.
type MappingFormula struct {
	TargetID string        `json:"target_id"`
	Text     string        `json:"formula"`
	Status   FormulaStatus `json:"status"`
	// Value is set after successful evaluation, nil otherwise.
	Value *float64 `json:"calculated_value,omitempty"`
	// LastError holds the most recent parse or evaluation failure.
	LastError error `json:"-"`

	parsed formula.Expr
}

// NewMappingFormula creates an unparsed mapping for a target.
func NewMappingFormula(targetID, text string) *MappingFormula {
	return &MappingFormula{TargetID: targetID, Text: text, Status: StatusUnparsed}
}

// Update replaces the formula text, discarding any cached expression,
// result and error.
func (m *MappingFormula) Update(text string) {
	m.Text = text
	m.Status = StatusUnparsed
	m.Value = nil
	m.LastError = nil
	m.parsed = nil
}

// Parsed returns the cached expression tree, parsing the text on first call.
// A parse failure marks the mapping failed and excludes it from batch runs
// until the text is corrected.
func (m *MappingFormula) Parsed() (formula.Expr, error) {
	if m.parsed != nil {
		return m.parsed, nil
	}
	expr, err := formula.Parse(m.Text)
	if err != nil {
		m.Status = StatusFailed
		m.LastError = err
		return nil, err
	}
	m.parsed = expr
	if m.Status == StatusUnparsed {
		m.Status = StatusParsed
	}
	return expr, nil
}

// CloneFormulas deep-copies a mapping set so previews and what-if runs
// cannot mutate the stored state. The expression cache is dropped and
// rebuilt on demand in the copy.
func CloneFormulas(formulas map[string]*MappingFormula) (map[string]*MappingFormula, error) {
	src := make(map[string]*MappingFormula, len(formulas))
	for id, f := range formulas {
		src[id] = &MappingFormula{
			TargetID: f.TargetID,
			Text:     f.Text,
			Status:   f.Status,
			Value:    f.Value,
		}
	}
	var out map[string]*MappingFormula
	if err := deepcopy.Copy(&out, src); err != nil {
		return nil, err
	}
	for id, f := range formulas {
		out[id].LastError = f.LastError
	}
	return out, nil
}
