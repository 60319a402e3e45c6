package formula

// Parse parses a formula string into an expression tree.
//
// Grammar: references and parenthesized groups combined with + - * /,
// where * and / bind tighter and equal precedence associates left.
// The error result is always a *ParseError.
func Parse(input string) (Expr, error) {
	tokens, terr := tokenize(input)
	if terr != nil {
		return nil, terr
	}
	if tokens[0].kind == tokenEOF {
		return nil, newParseError(EmptyFormula, 0, "")
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		if tok.kind == tokenRParen {
			return nil, newParseError(UnbalancedParentheses, tok.pos, tok.text)
		}
		return nil, newParseError(UnexpectedToken, tok.pos, tok.text)
	}
	return expr, nil
}

type parser struct {
	tokens []token
	i      int
}

func (p *parser) peek() token { return p.tokens[p.i] }

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func precedence(op Op) int {
	switch op {
	case OpMul, OpDiv:
		return 2
	default:
		return 1
	}
}

// parseExpr is standard precedence climbing: consume operands joined by
// operators whose precedence is at least min, recursing with min+1 on the
// right-hand side so equal precedence stays left-associative.
func (p *parser) parseExpr(min int) (Expr, *ParseError) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || precedence(tok.op) < min {
			return left, nil
		}
		p.next()
		right, err := p.parseExpr(precedence(tok.op) + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.op, Left: left, Right: right, pos: tok.pos}
	}
}

func (p *parser) parseOperand() (Expr, *ParseError) {
	tok := p.next()
	switch tok.kind {
	case tokenRef:
		return &Ref{Sheet: tok.sheet, Item: tok.item, Column: tok.column, pos: tok.pos}, nil
	case tokenLParen:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, newParseError(UnbalancedParentheses, tok.pos, tok.text)
		}
		return &Paren{Inner: inner, pos: tok.pos}, nil
	case tokenEOF:
		// Trailing operator or dangling open parenthesis.
		return nil, newParseError(UnexpectedToken, tok.pos, "")
	default:
		return nil, newParseError(UnexpectedToken, tok.pos, tok.text)
	}
}
