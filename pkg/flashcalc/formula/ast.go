// Package formula implements the mapping-formula language: three-part
// bracketed references combined with the four arithmetic operators.
package formula

import "fmt"

// Op is a binary arithmetic operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

func (o Op) String() string { return string(byte(o)) }

// Expr is a node of a parsed formula expression tree.
type Expr interface {
	// Pos returns the byte offset of the node in the original formula text.
	Pos() int
	// String re-serializes the node to formula syntax.
	String() string

	exprNode()
}

// Ref is a leaf reference [Sheet]![Item]![Column].
type Ref struct {
	Sheet  string
	Item   string
	Column string

	pos int
}

// Binary is a binary arithmetic operation.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr

	pos int
}

// Paren is a parenthesized group.
type Paren struct {
	Inner Expr

	pos int
}

func (r *Ref) Pos() int    { return r.pos }
func (b *Binary) Pos() int { return b.pos }
func (p *Paren) Pos() int  { return p.pos }

func (r *Ref) String() string {
	return fmt.Sprintf("[%s]![%s]![%s]", r.Sheet, r.Item, r.Column)
}

func (b *Binary) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Op, b.Right)
}

func (p *Paren) String() string {
	return fmt.Sprintf("(%s)", p.Inner)
}

func (*Ref) exprNode()    {}
func (*Binary) exprNode() {}
func (*Paren) exprNode()  {}

// References collects every leaf reference of expr in left-to-right order.
func References(expr Expr) []*Ref {
	var refs []*Ref
	walk(expr, &refs)
	return refs
}

func walk(expr Expr, refs *[]*Ref) {
	switch n := expr.(type) {
	case *Ref:
		*refs = append(*refs, n)
	case *Binary:
		walk(n.Left, refs)
		walk(n.Right, refs)
	case *Paren:
		walk(n.Inner, refs)
	}
}
