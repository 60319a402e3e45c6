// Package convert turns parsed mapping expressions into native Excel
// formulas over the resolved source cells, so exported workbooks recompute
// on their own.
package convert

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/formula"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
)

// CellLocator maps a reference to the cell address holding its value.
type CellLocator interface {
	// Locate returns the cell address (e.g. "D5") of (sheet, item, column).
	Locate(sheet, item, column string) (string, bool)
}

// WorkbookLocator locates cells from extracted workbook data: the item's
// row combined with the position of the canonical column in the sheet's
// normalized column list.
type WorkbookLocator struct {
	book *models.WorkbookData
}

// NewWorkbookLocator creates a locator over extracted workbook data.
func NewWorkbookLocator(book *models.WorkbookData) *WorkbookLocator {
	return &WorkbookLocator{book: book}
}

// Locate implements CellLocator.
func (l *WorkbookLocator) Locate(sheet, item, column string) (string, bool) {
	data, ok := l.book.Sheets[sheet]
	if !ok {
		return "", false
	}
	col := -1
	for i, name := range data.Columns {
		if name == column {
			col = i + 1
			break
		}
	}
	if col < 0 {
		return "", false
	}
	for _, s := range data.Sources {
		if s.Name == item {
			cell, err := excelize.CoordinatesToCellName(col, s.Row)
			if err != nil {
				return "", false
			}
			return cell, true
		}
	}
	return "", false
}

// ToExcelFormula renders expr as an Excel formula string (with leading "="),
// replacing each reference with its located cross-sheet cell address.
func ToExcelFormula(expr formula.Expr, locator CellLocator) (string, error) {
	var sb strings.Builder
	sb.WriteByte('=')
	if err := writeExpr(&sb, expr, locator); err != nil {
		return "", err
	}
	out := sb.String()
	if err := ValidateExcelFormula(out); err != nil {
		return "", err
	}
	return out, nil
}

func writeExpr(sb *strings.Builder, expr formula.Expr, locator CellLocator) error {
	switch n := expr.(type) {
	case *formula.Ref:
		cell, ok := locator.Locate(n.Sheet, n.Item, n.Column)
		if !ok {
			return fmt.Errorf("no cell for reference %s", n)
		}
		sb.WriteString(quoteSheet(n.Sheet))
		sb.WriteByte('!')
		sb.WriteString(cell)
		return nil
	case *formula.Binary:
		if err := writeExpr(sb, n.Left, locator); err != nil {
			return err
		}
		sb.WriteString(n.Op.String())
		return writeExpr(sb, n.Right, locator)
	case *formula.Paren:
		sb.WriteByte('(')
		if err := writeExpr(sb, n.Inner, locator); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	default:
		return fmt.Errorf("unsupported node at offset %d", expr.Pos())
	}
}

// quoteSheet wraps sheet names in single quotes when they contain
// characters Excel requires quoting for.
func quoteSheet(name string) string {
	if strings.ContainsAny(name, " -+*/()!'") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

// ValidateExcelFormula tokenizes a produced formula with the efp parser and
// rejects unknown tokens or unbalanced subexpressions.
func ValidateExcelFormula(excelFormula string) error {
	body := strings.TrimPrefix(excelFormula, "=")
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("empty excel formula")
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse(body)
	if tokens == nil {
		return fmt.Errorf("unparseable excel formula: %s", excelFormula)
	}
	depth := 0
	for _, token := range tokens {
		if token.TType == efp.TokenTypeUnknown {
			return fmt.Errorf("invalid token %q in excel formula", token.TValue)
		}
		if token.TType == efp.TokenTypeSubexpression {
			switch token.TSubType {
			case efp.TokenSubTypeStart:
				depth++
			case efp.TokenSubTypeStop:
				depth--
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses in excel formula")
	}
	return nil
}
