package calc

import (
	"encoding/json"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
)

// Engine runs mapping formulas against a frozen source index. Formula
// evaluations are independent of each other, so batch runs fan out over a
// worker pool; the only writes are per-formula result fields.
type Engine struct {
	index    *SourceIndex
	formulas map[string]*models.MappingFormula
	// Workers bounds the evaluation pool; defaults to GOMAXPROCS.
	Workers int
}

// NewEngine creates an engine over a built index and a mapping set. The
// index must be complete before the first evaluation starts.
func NewEngine(index *SourceIndex, formulas map[string]*models.MappingFormula) *Engine {
	return &Engine{index: index, formulas: formulas}
}

// ValidateAll parses every formula and returns the parse error per target
// id (nil for valid formulas). Invalid formulas are marked failed and stay
// excluded from batch evaluation until corrected.
func (e *Engine) ValidateAll() map[string]error {
	results := make(map[string]error, len(e.formulas))
	for id, f := range e.formulas {
		_, err := f.Parsed()
		results[id] = err
	}
	return results
}

// CalculateOne evaluates a single mapping formula and updates its status,
// value and last error.
func (e *Engine) CalculateOne(f *models.MappingFormula) models.CalculationResult {
	start := time.Now()
	result := models.CalculationResult{TargetID: f.TargetID}

	expr, err := f.Parsed()
	if err == nil {
		var value float64
		value, err = Evaluate(expr, e.index)
		if err == nil {
			f.Status = models.StatusResolved
			f.Value = &value
			f.LastError = nil
			result.Success = true
			result.Value = &value
		}
	}
	if err != nil {
		f.Status = models.StatusFailed
		f.Value = nil
		f.LastError = err
		result.Error = err.Error()
	}

	result.Duration = time.Since(start)
	result.DurationMS = float64(result.Duration) / float64(time.Millisecond)
	return result
}

// CalculateAll evaluates every mapping formula concurrently. Failures are
// isolated per target: one bad formula never aborts the rest of the run.
func (e *Engine) CalculateAll() *models.RunSummary {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	summary := &models.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Total:     len(e.formulas),
	}

	jobs := make(chan *models.MappingFormula)
	results := make(chan models.CalculationResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				results <- e.CalculateOne(f)
			}
		}()
	}
	go func() {
		for _, f := range e.formulas {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, r)
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].TargetID < summary.Results[j].TargetID
	})

	summary.Duration = time.Since(summary.StartedAt)
	summary.DurationMS = float64(summary.Duration) / float64(time.Millisecond)
	return summary
}

// Preview evaluates a candidate formula text without touching any stored
// mapping. Both user-typed and suggestion-service formulas go through the
// same strict parse; there is no trusted path.
func (e *Engine) Preview(text string) (float64, error) {
	f := models.NewMappingFormula("", text)
	expr, err := f.Parsed()
	if err != nil {
		return 0, err
	}
	return Evaluate(expr, e.index)
}

// PreviewAll evaluates a deep-copied snapshot of the mapping set, leaving
// stored statuses and values untouched.
func (e *Engine) PreviewAll() (*models.RunSummary, error) {
	snapshot, err := models.CloneFormulas(e.formulas)
	if err != nil {
		return nil, err
	}
	shadow := NewEngine(e.index, snapshot)
	shadow.Workers = e.Workers
	return shadow.CalculateAll(), nil
}

// ExportJSON writes a run summary as indented JSON.
func ExportJSON(path string, summary *models.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
