package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/formula"
	"github.com/flashcalc/flashcalc-go/pkg/flashcalc/models"
)

func fl(v float64) *float64 { return &v }

func testIndex(t *testing.T) *SourceIndex {
	t.Helper()

	cash := models.NewSourceItem("科目余额表", "库存现金", "1001", 4)
	cash.SetValue("期末余额_借方", fl(100.0))
	cash.SetValue("期末余额_贷方", fl(0.0))
	cash.SetValue("本期发生额_借方", nil) // present column, no data

	bank := models.NewSourceItem("科目余额表", "银行存款", "1002", 5)
	bank.SetValue("期末余额_借方", fl(250.0))

	idx, err := BuildIndex([]*models.SourceItem{cash, bank})
	require.NoError(t, err)
	return idx
}

func mustParse(t *testing.T, text string) formula.Expr {
	t.Helper()
	expr, err := formula.Parse(text)
	require.NoError(t, err)
	return expr
}

func TestEvaluateSum(t *testing.T) {
	idx := testIndex(t)
	expr := mustParse(t, "[科目余额表]![库存现金]![期末余额_借方] + [科目余额表]![银行存款]![期末余额_借方]")

	value, err := Evaluate(expr, idx)
	require.NoError(t, err)
	assert.Equal(t, 350.0, value)
}

func TestEvaluatePrecedenceAndParens(t *testing.T) {
	idx := testIndex(t)

	value, err := Evaluate(mustParse(t,
		"[科目余额表]![库存现金]![期末余额_借方] + [科目余额表]![银行存款]![期末余额_借方] * [科目余额表]![库存现金]![期末余额_借方]"), idx)
	require.NoError(t, err)
	assert.Equal(t, 100.0+250.0*100.0, value)

	value, err = Evaluate(mustParse(t,
		"([科目余额表]![库存现金]![期末余额_借方] + [科目余额表]![银行存款]![期末余额_借方]) * [科目余额表]![库存现金]![期末余额_借方]"), idx)
	require.NoError(t, err)
	assert.Equal(t, (100.0+250.0)*100.0, value)
}

func TestEvaluateUnresolvedItem(t *testing.T) {
	idx := testIndex(t)

	_, err := Evaluate(mustParse(t, "[科目余额表]![应收账款]![期末余额_借方]"), idx)
	require.Error(t, err)

	rerr, ok := err.(*ResolveError)
	require.True(t, ok)
	assert.Equal(t, UnresolvedItem, rerr.Kind)
	assert.Equal(t, "科目余额表", rerr.Sheet)
	assert.Equal(t, "应收账款", rerr.Item)
}

func TestEvaluateDistinguishesColumnFromValue(t *testing.T) {
	idx := testIndex(t)

	// Column absent from the matched item.
	_, err := Evaluate(mustParse(t, "[科目余额表]![库存现金]![年初余额_借方]"), idx)
	require.Error(t, err)
	rerr, ok := err.(*ResolveError)
	require.True(t, ok)
	assert.Equal(t, UnresolvedColumn, rerr.Kind)
	assert.Equal(t, "年初余额_借方", rerr.Column)

	// Column present but holding no data.
	_, err = Evaluate(mustParse(t, "[科目余额表]![库存现金]![本期发生额_借方]"), idx)
	require.Error(t, err)
	rerr, ok = err.(*ResolveError)
	require.True(t, ok)
	assert.Equal(t, MissingValue, rerr.Kind)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	idx := testIndex(t)

	// 期末余额_贷方 resolves to exactly 0.0.
	_, err := Evaluate(mustParse(t,
		"[科目余额表]![库存现金]![期末余额_借方] / [科目余额表]![库存现金]![期末余额_贷方]"), idx)
	require.Error(t, err)

	eerr, ok := err.(*EvalError)
	require.True(t, ok, "expected *EvalError, got %T", err)
	assert.Equal(t, "division_by_zero", eerr.Kind)
}

func TestEvaluateShortCircuitsLeftToRight(t *testing.T) {
	idx := testIndex(t)

	// Both operands fail; the left failure must be the one reported.
	_, err := Evaluate(mustParse(t,
		"[科目余额表]![没有这个]![期末余额_借方] + [科目余额表]![库存现金]![没有这列]"), idx)
	require.Error(t, err)

	rerr, ok := err.(*ResolveError)
	require.True(t, ok)
	assert.Equal(t, UnresolvedItem, rerr.Kind)
	assert.Equal(t, "没有这个", rerr.Item)
}

func TestEvaluateIdempotent(t *testing.T) {
	idx := testIndex(t)
	expr := mustParse(t, "[科目余额表]![库存现金]![期末余额_借方] + [科目余额表]![银行存款]![期末余额_借方]")

	first, err1 := Evaluate(expr, idx)
	second, err2 := Evaluate(expr, idx)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)

	bad := mustParse(t, "[科目余额表]![没有这个]![期末余额_借方]")
	_, err1 = Evaluate(bad, idx)
	_, err2 = Evaluate(bad, idx)
	assert.Equal(t, err1, err2)
}

func TestBuildIndexDuplicateKey(t *testing.T) {
	a := models.NewSourceItem("科目余额表", "库存现金", "1001", 4)
	b := models.NewSourceItem("科目余额表", "库存现金", "1001", 9)

	_, err := BuildIndex([]*models.SourceItem{a, b})
	require.Error(t, err)

	ierr, ok := err.(*IndexError)
	require.True(t, ok)
	assert.Equal(t, "duplicate_source_key", ierr.Kind)
	assert.Equal(t, "库存现金", ierr.Item)
}

func TestIndexLookup(t *testing.T) {
	idx := testIndex(t)
	assert.Equal(t, 2, idx.Len())

	item, ok := idx.Lookup("科目余额表", "银行存款")
	require.True(t, ok)
	assert.Equal(t, "1002", item.Code)

	_, ok = idx.Lookup("利润表", "银行存款")
	assert.False(t, ok)

	assert.Equal(t, []string{"科目余额表"}, idx.Sheets())
}
