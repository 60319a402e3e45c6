package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	cfg := Default()
	if len(cfg.Sheets) == 0 {
		t.Fatal("Expected built-in rules")
	}

	targets := 0
	for _, rule := range cfg.Sheets {
		if rule.IsTarget() {
			targets++
		}
	}
	if targets != 1 {
		t.Errorf("Expected exactly one target rule, got %d", targets)
	}
}

func TestDetect(t *testing.T) {
	cfg := Default()

	tests := []struct {
		sheetName string
		ruleType  string
		found     bool
	}{
		{"科目余额表", "科目余额表", true},
		{"2024年科目余额表", "科目余额表", true},
		{"试算平衡表", "试算平衡表", true},
		{"利润表", "利润表", true},
		{"财务快报", "快报表", true},
		{"Sheet1", "", false},
	}

	for _, tt := range tests {
		rule, found := cfg.Detect(tt.sheetName)
		if found != tt.found {
			t.Errorf("Detect(%q) found = %v, expected %v", tt.sheetName, found, tt.found)
			continue
		}
		if found && rule.Type != tt.ruleType {
			t.Errorf("Detect(%q) = %q, expected %q", tt.sheetName, rule.Type, tt.ruleType)
		}
	}
}

func TestDetectExactNameBeatsKeyword(t *testing.T) {
	cfg := &Config{Sheets: []SheetRule{
		{Type: "余额表", Keywords: []string{"科目余额"}, Role: "source"},
		{Type: "科目余额表", Keywords: []string{"科目余额"}, Role: "source"},
	}}

	rule, found := cfg.Detect("科目余额表")
	if !found || rule.Type != "科目余额表" {
		t.Errorf("Expected exact type-name match to win, got %+v", rule)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	content := `
sheets:
  - type: custom
    keywords: [custom]
    role: source
    header_rows: 2
    name_column: 3
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Sheets) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(cfg.Sheets))
	}

	rule := cfg.Sheets[0]
	if rule.NameColumn != 3 {
		t.Errorf("Expected name column 3, got %d", rule.NameColumn)
	}
	// Defaults fill unset fields.
	if rule.DataStartRow != 3 {
		t.Errorf("Expected data start row defaulted to 3, got %d", rule.DataStartRow)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("sheets: [::"), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
