package models

// ChartKind enumerates the visualizations the frontend can render.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartPie     ChartKind = "pie"
	ChartScatter ChartKind = "scatter"
	ChartTable   ChartKind = "table"
)

// ChartSpec describes how to visualize a result table.
type ChartSpec struct {
	Chart ChartKind `json:"chart"`
	X     *string   `json:"x"`
	Y     *string   `json:"y"`
	Title string    `json:"title"`
}

// DefaultChartSpec is the deterministic fallback used when the model's
// output cannot be parsed into a valid spec.
func DefaultChartSpec() ChartSpec {
	return ChartSpec{Chart: ChartTable, X: nil, Y: nil, Title: "Data Preview"}
}

// Valid reports whether the chart kind is one of the known values.
func (s ChartSpec) Valid() bool {
	switch s.Chart {
	case ChartLine, ChartBar, ChartPie, ChartScatter, ChartTable:
		return true
	default:
		return false
	}
}
