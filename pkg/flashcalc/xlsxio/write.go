package xlsxio

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/convert"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
)

// Backup copies the workbook next to itself with a timestamp suffix and
// returns the backup path. Called before any write-back so the original
// file survives a bad run.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backupPath := fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", err
	}
	return backupPath, nil
}

// WriteResults writes every calculated value to its target cell and saves
// the workbook. With asFormulas set, the native Excel formula is written
// instead of the value, so the exported workbook recalculates on its own;
// references that cannot be located fall back to the plain value.
func WriteResults(path string, book *models.WorkbookData, asFormulas bool) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	locator := convert.NewWorkbookLocator(book)

	written := 0
	for id, mapping := range book.Formulas {
		if mapping.Value == nil {
			continue
		}
		target := book.Target(id)
		if target == nil || target.TargetCell == "" {
			continue
		}

		if asFormulas {
			if expr, err := mapping.Parsed(); err == nil {
				if excelFormula, err := convert.ToExcelFormula(expr, locator); err == nil {
					if err := f.SetCellFormula(target.Sheet, target.TargetCell, excelFormula); err != nil {
						return written, err
					}
					written++
					continue
				}
			}
		}
		if err := f.SetCellValue(target.Sheet, target.TargetCell, *mapping.Value); err != nil {
			return written, err
		}
		written++
	}

	if err := f.Save(); err != nil {
		return written, err
	}
	return written, nil
}
