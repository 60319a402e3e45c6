// Package rules holds the per-sheet-type extraction rules: how a sheet is
// recognized by name, how many header rows it carries, and where its item
// names and data begin.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SheetRule describes how to extract one recognized sheet type.
type SheetRule struct {
	// Type is the rule key, e.g. "科目余额表".
	Type string `yaml:"type"`
	// Keywords match against the sheet name, any hit selects the rule.
	Keywords []string `yaml:"keywords"`
	// Role is "source" or "target" (the flash-report sheet).
	Role string `yaml:"role"`
	// HeaderRows is the number of header rows (1 or 2).
	HeaderRows int `yaml:"header_rows"`
	// NameColumn is the 1-based column holding item names.
	NameColumn int `yaml:"name_column"`
	// CodeColumn is the 1-based column holding item codes, 0 for none.
	CodeColumn int `yaml:"code_column,omitempty"`
	// DataStartRow is the first 1-based data row.
	DataStartRow int `yaml:"data_start_row"`
	// ValueColumn is the 1-based column calculated values are written to
	// on a target sheet, 0 for the column after the name column.
	ValueColumn int `yaml:"value_column,omitempty"`
	// PrimaryColumn is the canonical column written back to targets.
	PrimaryColumn string `yaml:"primary_column,omitempty"`
}

// IsTarget reports whether the rule describes the flash-report sheet.
func (r *SheetRule) IsTarget() bool { return r.Role == "target" }

// Config is the full rule set.
type Config struct {
	Sheets []SheetRule `yaml:"sheets"`
}

// defaultConfig mirrors the built-in rule table for common Chinese
// financial statements. A YAML file with the same shape overrides it.
const defaultConfig = `
sheets:
  - type: 科目余额表
    keywords: [科目余额, 余额表]
    role: source
    header_rows: 2
    name_column: 2
    code_column: 1
    data_start_row: 3
    primary_column: 期末余额_借方
  - type: 试算平衡表
    keywords: [试算, 平衡]
    role: source
    header_rows: 2
    name_column: 2
    code_column: 1
    data_start_row: 3
    primary_column: 期末余额_借方
  - type: 资产负债表
    keywords: [资产负债, 负债表]
    role: source
    header_rows: 1
    name_column: 1
    data_start_row: 2
    primary_column: 期末余额
  - type: 利润表
    keywords: [利润, 损益]
    role: source
    header_rows: 1
    name_column: 1
    data_start_row: 2
    primary_column: 本期金额
  - type: 现金流量表
    keywords: [现金流量]
    role: source
    header_rows: 1
    name_column: 1
    data_start_row: 2
    primary_column: 本期金额
  - type: 快报表
    keywords: [快报]
    role: target
    header_rows: 1
    name_column: 1
    data_start_row: 2
    value_column: 2
`

// Default returns the built-in rule set.
func Default() *Config {
	cfg, err := parse([]byte(defaultConfig))
	if err != nil {
		panic(fmt.Sprintf("rules: invalid built-in config: %v", err))
	}
	return cfg
}

// Load reads a rule set from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	for i := range cfg.Sheets {
		r := &cfg.Sheets[i]
		if r.HeaderRows <= 0 {
			r.HeaderRows = 1
		}
		if r.NameColumn <= 0 {
			r.NameColumn = 1
		}
		if r.DataStartRow <= 0 {
			r.DataStartRow = r.HeaderRows + 1
		}
	}
	return &cfg, nil
}

// Detect matches a sheet name against the rule keywords and returns the
// first matching rule.
func (c *Config) Detect(sheetName string) (*SheetRule, bool) {
	for i := range c.Sheets {
		rule := &c.Sheets[i]
		if sheetName == rule.Type {
			return rule, true
		}
	}
	for i := range c.Sheets {
		rule := &c.Sheets[i]
		for _, kw := range rule.Keywords {
			if strings.Contains(sheetName, kw) {
				return rule, true
			}
		}
	}
	return nil, false
}
