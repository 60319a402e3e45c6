package calc

import "github.com/flashcalc/flashcalc-go/pkg/flashcalc/formula"

// Evaluate resolves every reference of expr against the index and computes
// the arithmetic result. Traversal is post-order, left to right, and stops
// at the first unresolved leaf or arithmetic error, so repeated evaluation
// of the same (expr, index) pair always yields the same outcome.
//
// All arithmetic is float64. Division by a resolved value of exactly zero
// is a fatal *EvalError rather than an infinity.
func Evaluate(expr formula.Expr, idx *SourceIndex) (float64, error) {
	switch n := expr.(type) {
	case *formula.Ref:
		return resolveRef(n, idx)
	case *formula.Paren:
		return Evaluate(n.Inner, idx)
	case *formula.Binary:
		left, err := Evaluate(n.Left, idx)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right, idx)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case formula.OpAdd:
			return left + right, nil
		case formula.OpSub:
			return left - right, nil
		case formula.OpMul:
			return left * right, nil
		default:
			if right == 0 {
				return 0, &EvalError{Kind: divisionByZero, Pos: n.Pos()}
			}
			return left / right, nil
		}
	default:
		// Unreachable for trees produced by formula.Parse.
		return 0, &EvalError{Kind: "unsupported_node", Pos: expr.Pos()}
	}
}

// resolveRef looks up one leaf reference. The three failure kinds are
// reported separately: unknown item, unknown column, and a known column
// holding no data.
func resolveRef(ref *formula.Ref, idx *SourceIndex) (float64, error) {
	item, ok := idx.Lookup(ref.Sheet, ref.Item)
	if !ok {
		return 0, &ResolveError{Kind: UnresolvedItem, Sheet: ref.Sheet, Item: ref.Item}
	}
	value, ok := item.Values[ref.Column]
	if !ok {
		return 0, &ResolveError{Kind: UnresolvedColumn, Sheet: ref.Sheet, Item: ref.Item, Column: ref.Column}
	}
	if value == nil {
		return 0, &ResolveError{Kind: MissingValue, Sheet: ref.Sheet, Item: ref.Item, Column: ref.Column}
	}
	return *value, nil
}
