// Package xlsxio reads source and flash-report sheets from xlsx workbooks
// and writes calculated values back.
package xlsxio

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/header"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/hierarchy"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/rules"
)

// ReadSourceSheet extracts source items from a data sheet. Header rows are
// flattened into canonical column names; every data column of a row becomes
// one entry in the item's value map, nil when the cell is blank or not
// numeric.
func ReadSourceSheet(f *excelize.File, sheetName string, rule *rules.SheetRule) (models.SheetData, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.SheetData{}, err
	}

	headerRows := rows
	if len(rows) > rule.HeaderRows {
		headerRows = rows[:rule.HeaderRows]
	}
	columns := header.Normalize(headerRows)

	data := models.SheetData{Type: rule.Type, Columns: columns}
	for rowIdx := rule.DataStartRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		name := cellText(row, rule.NameColumn)
		if name == "" {
			continue
		}
		code := cellText(row, rule.CodeColumn)

		item := models.NewSourceItem(sheetName, name, code, rowIdx+1)
		for colIdx, column := range columns {
			if column == "" || colIdx+1 == rule.NameColumn || colIdx+1 == rule.CodeColumn {
				continue
			}
			item.SetValue(column, parseNumber(cellAt(row, colIdx)))
		}
		data.Sources = append(data.Sources, item)
	}
	return data, nil
}

// ReadTargetSheet extracts flash-report rows and builds the item hierarchy.
// The computed value of each item is written back to the rule's value
// column on the item's own row.
func ReadTargetSheet(f *excelize.File, sheetName string, rule *rules.SheetRule) ([]*models.TargetItem, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var raw []hierarchy.RawRow
	for rowIdx := rule.DataStartRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		text := cellAt(row, rule.NameColumn-1)
		if strings.TrimSpace(text) == "" {
			continue
		}
		raw = append(raw, hierarchy.RawRow{
			Seq:  cellText(row, rule.CodeColumn),
			Text: text,
			Row:  rowIdx + 1,
		})
	}

	items := hierarchy.Extract(sheetName, raw)

	valueCol := rule.ValueColumn
	if valueCol <= 0 {
		valueCol = rule.NameColumn + 1
	}
	for _, item := range items {
		cell, err := excelize.CoordinatesToCellName(valueCol, item.Row)
		if err != nil {
			return nil, err
		}
		item.TargetCell = cell
	}
	return items, nil
}

// cellText returns the trimmed text of a 1-based column, "" when absent.
func cellText(row []string, col int) string {
	if col <= 0 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}

// cellAt returns the raw text of a 0-based column with indentation intact.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseNumber parses a cell as float64, tolerating thousands separators and
// accounting-style parenthesized negatives. Blank or non-numeric cells
// yield nil, meaning "no data for this column".
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if negative {
		v = -v
	}
	return &v
}
