package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultTable_NumericCoercion(t *testing.T) {
	t.Run("all values parse", func(t *testing.T) {
		table := NewResultTable([]string{"amount"}, []map[string]any{
			{"amount": "10"},
			{"amount": "20"},
			{"amount": "30"},
		})

		require.Equal(t, ColumnNumeric, table.Columns[0].Kind)
		assert.Equal(t, 10.0, table.Rows[0]["amount"])
		assert.Equal(t, 20.0, table.Rows[1]["amount"])
		assert.Equal(t, 30.0, table.Rows[2]["amount"])
	})

	t.Run("no values parse stays text", func(t *testing.T) {
		table := NewResultTable([]string{"name"}, []map[string]any{
			{"name": "a"},
			{"name": "b"},
			{"name": "c"},
		})

		require.Equal(t, ColumnText, table.Columns[0].Kind)
		assert.Equal(t, "a", table.Rows[0]["name"])
		assert.Equal(t, "b", table.Rows[1]["name"])
		assert.Equal(t, "c", table.Rows[2]["name"])
	})

	t.Run("partial parse converts with nulls", func(t *testing.T) {
		table := NewResultTable([]string{"v"}, []map[string]any{
			{"v": "1"},
			{"v": "2"},
			{"v": "abc"},
		})

		require.Equal(t, ColumnNumeric, table.Columns[0].Kind)
		assert.Equal(t, 1.0, table.Rows[0]["v"])
		assert.Equal(t, 2.0, table.Rows[1]["v"])
		assert.Nil(t, table.Rows[2]["v"])
	})

	t.Run("driver byte slices convert", func(t *testing.T) {
		table := NewResultTable([]string{"total"}, []map[string]any{
			{"total": []byte("1500.50")},
		})

		require.Equal(t, ColumnNumeric, table.Columns[0].Kind)
		assert.Equal(t, 1500.5, table.Rows[0]["total"])
	})

	t.Run("text byte slices become strings", func(t *testing.T) {
		table := NewResultTable([]string{"region"}, []map[string]any{
			{"region": []byte("north")},
		})

		require.Equal(t, ColumnText, table.Columns[0].Kind)
		assert.Equal(t, "north", table.Rows[0]["region"])
	})

	t.Run("nulls preserved in numeric column", func(t *testing.T) {
		table := NewResultTable([]string{"v"}, []map[string]any{
			{"v": int64(5)},
			{"v": nil},
		})

		require.Equal(t, ColumnNumeric, table.Columns[0].Kind)
		assert.Equal(t, 5.0, table.Rows[0]["v"])
		assert.Nil(t, table.Rows[1]["v"])
	})
}

func TestResultTable_Stats(t *testing.T) {
	table := NewResultTable([]string{"region", "amount"}, []map[string]any{
		{"region": "north", "amount": "10"},
		{"region": "south", "amount": "20"},
		{"region": "east", "amount": "60"},
	})

	stats, ok := table.Stats("amount")
	require.True(t, ok)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 60.0, stats.Max)
	assert.Equal(t, 30.0, stats.Mean)

	_, ok = table.Stats("region")
	assert.False(t, ok, "text column has no stats")

	_, ok = table.Stats("missing")
	assert.False(t, ok)
}

func TestResultTable_NullColumns(t *testing.T) {
	table := NewResultTable([]string{"a", "b"}, []map[string]any{
		{"a": "1", "b": "x"},
		{"a": nil, "b": "y"},
	})

	assert.Equal(t, []string{"a"}, table.NullColumns())
}

func TestResultTable_ColumnOrder(t *testing.T) {
	table := NewResultTable([]string{"z", "a", "m"}, nil)
	assert.Equal(t, []string{"z", "a", "m"}, table.ColumnNames())
	assert.True(t, table.IsEmpty())
	assert.Equal(t, 0, table.RowCount())
}

func TestChartSpec(t *testing.T) {
	spec := DefaultChartSpec()
	assert.Equal(t, ChartTable, spec.Chart)
	assert.Nil(t, spec.X)
	assert.Nil(t, spec.Y)
	assert.Equal(t, "Data Preview", spec.Title)
	assert.True(t, spec.Valid())

	assert.False(t, ChartSpec{Chart: "histogram"}.Valid())
}
