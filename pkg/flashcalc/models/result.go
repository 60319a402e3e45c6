package models

import "time"

// CalculationResult is the outcome of evaluating one mapping formula.
type CalculationResult struct {
	TargetID string   `json:"target_id"`
	Success  bool     `json:"success"`
	Value    *float64 `json:"value,omitempty"`
	// Error describes the failure, empty on success.
	Error string `json:"error,omitempty"`
	// Duration is the wall time spent on this formula.
	Duration   time.Duration `json:"-"`
	DurationMS float64       `json:"duration_ms"`
}

// RunSummary aggregates one batch calculation run.
type RunSummary struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// StartedAt is the wall-clock start of the run.
	StartedAt  time.Time           `json:"started_at"`
	Total      int                 `json:"total"`
	Succeeded  int                 `json:"succeeded"`
	Failed     int                 `json:"failed"`
	Duration   time.Duration       `json:"-"`
	DurationMS float64             `json:"duration_ms"`
	Results    []CalculationResult `json:"results"`
}
