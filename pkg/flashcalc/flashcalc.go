package flashcalc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/calc"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/rules"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/xlsxio"
)

// Extract reads a workbook and extracts source items from every recognized
// source sheet and target items from the flash-report sheet. Sheets no rule
// matches are skipped.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := opts.ruleset()
	book := &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetData),
		Formulas: make(map[string]*models.MappingFormula),
	}

	for _, sheetName := range f.GetSheetList() {
		rule, ok := cfg.Detect(sheetName)
		if !ok {
			continue
		}
		if rule.IsTarget() {
			targets, err := xlsxio.ReadTargetSheet(f, sheetName, rule)
			if err != nil {
				return nil, NewExtractionError(sheetName, "targets", err)
			}
			book.Targets = append(book.Targets, targets...)
			continue
		}
		data, err := xlsxio.ReadSourceSheet(f, sheetName, rule)
		if err != nil {
			return nil, NewExtractionError(sheetName, "sources", err)
		}
		book.Sheets[sheetName] = data
	}

	if len(book.Targets) == 0 {
		return nil, ErrNoTargetSheet
	}
	return book, nil
}

// LoadMappings reads a JSON file of target id -> formula text into the
// workbook's mapping set. Formulas are stored unparsed; validation happens
// on first use. An entry for an unknown target id is an error.
func LoadMappings(path string, book *models.WorkbookData) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var mappings map[string]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return err
	}
	for id, text := range mappings {
		if book.Target(id) == nil {
			return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
		}
		book.Formulas[id] = models.NewMappingFormula(id, text)
	}
	return nil
}

// Calculate builds the source index from the extracted sheets and runs
// every mapping formula. The index build fails fast on duplicate source
// keys; individual formula failures are isolated inside the run summary.
func Calculate(book *models.WorkbookData, opts Options) (*models.RunSummary, error) {
	index, err := calc.BuildIndex(book.SourceItems())
	if err != nil {
		return nil, err
	}
	engine := calc.NewEngine(index, book.Formulas)
	engine.Workers = opts.Workers
	return engine.CalculateAll(), nil
}

// WriteBack saves calculated values into the workbook after creating a
// timestamped backup copy. It returns the backup path and the number of
// cells written.
func WriteBack(path string, book *models.WorkbookData, opts Options) (string, int, error) {
	backupPath, err := xlsxio.Backup(path)
	if err != nil {
		return "", 0, err
	}
	written, err := xlsxio.WriteResults(path, book, opts.WriteFormulas)
	return backupPath, written, err
}

// LoadRules loads an extraction rule override file.
func LoadRules(path string) (*rules.Config, error) {
	return rules.Load(path)
}
