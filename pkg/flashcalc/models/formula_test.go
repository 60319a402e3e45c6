package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingFormulaLifecycle(t *testing.T) {
	f := NewMappingFormula("快报表_2", "[A]![B]![C]")
	assert.Equal(t, StatusUnparsed, f.Status)

	expr, err := f.Parsed()
	require.NoError(t, err)
	assert.Equal(t, StatusParsed, f.Status)

	// Second call returns the cached tree.
	again, err := f.Parsed()
	require.NoError(t, err)
	assert.Same(t, expr, again)
}

func TestMappingFormulaParseFailureMarksFailed(t *testing.T) {
	f := NewMappingFormula("快报表_2", "[A]![B]")

	_, err := f.Parsed()
	require.Error(t, err)
	assert.Equal(t, StatusFailed, f.Status)
	assert.Error(t, f.LastError)
}

func TestMappingFormulaUpdateResetsState(t *testing.T) {
	f := NewMappingFormula("快报表_2", "[A]![B]")
	_, _ = f.Parsed()
	require.Equal(t, StatusFailed, f.Status)

	f.Update("[A]![B]![C]")
	assert.Equal(t, StatusUnparsed, f.Status)
	assert.Nil(t, f.Value)
	assert.NoError(t, f.LastError)

	_, err := f.Parsed()
	assert.NoError(t, err)
}

func TestCloneFormulasIsIndependent(t *testing.T) {
	v := 42.0
	original := map[string]*MappingFormula{
		"快报表_2": {TargetID: "快报表_2", Text: "[A]![B]![C]", Status: StatusResolved, Value: &v},
	}

	clone, err := CloneFormulas(original)
	require.NoError(t, err)
	require.Len(t, clone, 1)

	clone["快报表_2"].Status = StatusFailed
	*clone["快报表_2"].Value = 0

	assert.Equal(t, StatusResolved, original["快报表_2"].Status)
	assert.Equal(t, 42.0, *original["快报表_2"].Value)
}

func TestWorkbookHelpers(t *testing.T) {
	book := &WorkbookData{
		Sheets: map[string]SheetData{
			"科目余额表": {Sources: []*SourceItem{NewSourceItem("科目余额表", "库存现金", "1001", 3)}},
			"利润表":   {Sources: []*SourceItem{NewSourceItem("利润表", "营业收入", "", 2)}},
		},
		Targets: []*TargetItem{{ID: "快报表_2", Name: "资产"}},
	}

	assert.Len(t, book.SourceItems(), 2)
	require.NotNil(t, book.Target("快报表_2"))
	assert.Nil(t, book.Target("快报表_99"))
}

func TestSourceItemReference(t *testing.T) {
	item := NewSourceItem("科目余额表", "库存现金", "1001", 3)
	assert.Equal(t, "[科目余额表]![库存现金]![期末余额_借方]", item.Reference("期末余额_借方"))
}

func TestTargetID(t *testing.T) {
	assert.Equal(t, "快报表_12", TargetID("快报表", 12))
}
