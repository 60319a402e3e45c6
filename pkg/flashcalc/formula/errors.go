package formula

import "fmt"

// ParseErrorKind classifies formula parse failures.
type ParseErrorKind string

const (
	// EmptyFormula indicates the formula contains no tokens.
	EmptyFormula ParseErrorKind = "empty_formula"
	// UnbalancedParentheses indicates an unmatched ( or ).
	UnbalancedParentheses ParseErrorKind = "unbalanced_parentheses"
	// InvalidReferenceSyntax indicates a reference that is not a well-formed
	// [Sheet]![Item]![Column] three-part form.
	InvalidReferenceSyntax ParseErrorKind = "invalid_reference_syntax"
	// UnexpectedToken indicates a token that is not valid at its position.
	UnexpectedToken ParseErrorKind = "unexpected_token"
)

// ParseError is a structured parse failure with the offending position.
type ParseError struct {
	Kind ParseErrorKind
	// Pos is the byte offset of the offending token in the formula text.
	Pos int
	// Token is the offending substring, empty when not applicable.
	Token string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error (%s) at offset %d: %q", e.Kind, e.Pos, e.Token)
	}
	return fmt.Sprintf("parse error (%s) at offset %d", e.Kind, e.Pos)
}

func newParseError(kind ParseErrorKind, pos int, token string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Token: token}
}
