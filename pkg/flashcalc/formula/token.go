package formula

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenRef tokenKind = iota
	tokenOp
	tokenLParen
	tokenRParen
	tokenEOF
)

type token struct {
	kind tokenKind
	pos  int
	text string

	// Reference segments, set for tokenRef only.
	sheet  string
	item   string
	column string

	op Op
}

// tokenize splits a formula into reference, operator and parenthesis tokens.
// Reference well-formedness is checked here, not after parsing.
func tokenize(input string) ([]token, *ParseError) {
	var tokens []token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '[':
			tok, next, err := scanReference(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case r == '+' || r == '-' || r == '*' || r == '/':
			tokens = append(tokens, token{kind: tokenOp, pos: i, text: string(r), op: Op(r)})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i, text: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i, text: ")"})
			i++
		default:
			return nil, newParseError(UnexpectedToken, i, string(r))
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

// scanReference reads a strict three-part reference starting at start, which
// must point at '['. Segments may not be empty, nested or bracketless.
func scanReference(input string, start int) (token, int, *ParseError) {
	segments := make([]string, 0, 3)
	i := start
	for seg := 0; seg < 3; seg++ {
		if i >= len(input) || input[i] != '[' {
			return token{}, 0, newParseError(InvalidReferenceSyntax, start, input[start:i])
		}
		close := strings.IndexByte(input[i+1:], ']')
		if close < 0 {
			return token{}, 0, newParseError(InvalidReferenceSyntax, start, input[start:])
		}
		body := input[i+1 : i+1+close]
		if strings.TrimSpace(body) == "" || strings.ContainsRune(body, '[') {
			return token{}, 0, newParseError(InvalidReferenceSyntax, start, input[start:i+2+close])
		}
		segments = append(segments, strings.TrimSpace(body))
		i += close + 2

		if seg < 2 {
			if i >= len(input) || input[i] != '!' {
				return token{}, 0, newParseError(InvalidReferenceSyntax, start, input[start:i])
			}
			i++
		}
	}
	return token{
		kind:   tokenRef,
		pos:    start,
		text:   input[start:i],
		sheet:  segments[0],
		item:   segments[1],
		column: segments[2],
	}, i, nil
}
