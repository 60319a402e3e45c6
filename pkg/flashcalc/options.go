// Package flashcalc maps flash-report line items to values computed from
// source data sheets via a small reference-formula language.
package flashcalc

import "github.com/flashcalc/flashcalc-go/pkg/flashcalc/rules"

// Options configures extraction and calculation behavior.
type Options struct {
	// Rules overrides the built-in sheet extraction rules.
	// If nil, rules.Default() is used.
	Rules *rules.Config
	// Workers bounds the batch calculation pool.
	// If 0, one worker per CPU is used.
	Workers int
	// WriteFormulas writes native Excel formulas instead of plain values
	// when exporting results back into the workbook.
	WriteFormulas bool
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) ruleset() *rules.Config {
	if o.Rules != nil {
		return o.Rules
	}
	return rules.Default()
}
