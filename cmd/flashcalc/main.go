// Package main provides the CLI entry point for flashcalc.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/calc"
)

var (
	rulesPath     string
	mappingsPath  string
	outputPath    string
	pretty        bool
	workers       int
	writeBack     bool
	writeFormulas bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flashcalc",
		Short: "Map flash-report line items to values computed from source sheets",
		Long: `flashcalc extracts source data and flash-report line items from a
workbook, evaluates mapping formulas written as [Sheet]![Item]![Column]
arithmetic, and writes the computed values back.`,
	}
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML file overriding the built-in extraction rules")

	extractCmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract source items and report hierarchy, output JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	validateCmd := &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Validate the formulas of a mappings file",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVarP(&mappingsPath, "mappings", "m", "", "JSON file of target id -> formula (required)")
	validateCmd.MarkFlagRequired("mappings")

	calcCmd := &cobra.Command{
		Use:   "calc [input.xlsx]",
		Short: "Calculate all mapping formulas",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalc,
	}
	calcCmd.Flags().StringVarP(&mappingsPath, "mappings", "m", "", "JSON file of target id -> formula (required)")
	calcCmd.MarkFlagRequired("mappings")
	calcCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the run summary JSON to this path")
	calcCmd.Flags().IntVar(&workers, "workers", 0, "Calculation workers (default: one per CPU)")
	calcCmd.Flags().BoolVar(&writeBack, "write", false, "Write calculated values back into the workbook")
	calcCmd.Flags().BoolVar(&writeFormulas, "formulas", false, "Write native Excel formulas instead of plain values")

	rootCmd.AddCommand(extractCmd, validateCmd, calcCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadOptions() (flashcalc.Options, error) {
	opts := flashcalc.DefaultOptions()
	opts.Workers = workers
	opts.WriteFormulas = writeFormulas
	if rulesPath != "" {
		cfg, err := flashcalc.LoadRules(rulesPath)
		if err != nil {
			return opts, fmt.Errorf("failed to load rules: %w", err)
		}
		opts.Rules = cfg
	}
	return opts, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	book, err := flashcalc.Extract(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(book, "", "  ")
	} else {
		data, err = json.Marshal(book)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0644)
	}
	fmt.Println(string(data))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	book, err := flashcalc.Extract(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := flashcalc.LoadMappings(mappingsPath, book); err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}

	engine := calc.NewEngine(nil, book.Formulas)
	results := engine.ValidateAll()

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	invalid := 0
	for _, id := range ids {
		if verr := results[id]; verr != nil {
			invalid++
			fmt.Printf("%s: %v\n", id, verr)
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d formulas invalid", invalid, len(results))
	}
	log.Printf("all %d formulas valid", len(results))
	return nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	book, err := flashcalc.Extract(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := flashcalc.LoadMappings(mappingsPath, book); err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}

	summary, err := flashcalc.Calculate(book, opts)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}
	log.Printf("run %s: %d formulas, %d succeeded, %d failed (%.1fms)",
		summary.RunID, summary.Total, summary.Succeeded, summary.Failed, summary.DurationMS)
	for _, r := range summary.Results {
		if !r.Success {
			log.Printf("  %s: %s", r.TargetID, r.Error)
		}
	}

	if outputPath != "" {
		if err := calc.ExportJSON(outputPath, summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if writeBack {
		backupPath, written, err := flashcalc.WriteBack(args[0], book, opts)
		if err != nil {
			return fmt.Errorf("write-back failed: %w", err)
		}
		log.Printf("wrote %d values (backup at %s)", written, backupPath)
	}
	return nil
}
