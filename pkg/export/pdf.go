// Package export renders query results into downloadable report artifacts.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nsight-ai/nsight-engine/pkg/models"
)

// pdfTableRows caps the data preview embedded in the report.
const pdfTableRows = 15

var headingColor = &props.Color{Red: 102, Green: 126, Blue: 234}

// PDFRenderer builds analysis reports with maroto.
type PDFRenderer struct {
	now func() time.Time
}

// NewPDFRenderer creates a renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

// Render produces a PDF report: title, timestamp, the question, insight
// paragraphs, the SQL, and a bounded data preview table.
func (r *PDFRenderer) Render(question, insights, sqlQuery string, table *models.ResultTable) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	r.addHeader(m)
	r.addSection(m, "Question", question)
	r.addInsights(m, insights)
	r.addSection(m, "SQL Query", sqlQuery)
	if table != nil && !table.IsEmpty() {
		r.addTable(m, table)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

func (r *PDFRenderer) addHeader(m core.Maroto) {
	m.AddRow(14,
		col.New(12).Add(
			text.New("Nsight Finance AI", props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: headingColor,
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New("Data Analysis Report", props.Text{
				Size:  12,
				Align: align.Center,
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New("Generated: "+r.now().Format("January 2, 2006 at 3:04 PM"), props.Text{
				Size:  9,
				Align: align.Center,
			}),
		),
	)
	m.AddRow(5)
}

func (r *PDFRenderer) addSection(m core.Maroto, title, body string) {
	if body == "" {
		return
	}
	m.AddRow(8,
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Color: headingColor,
			}),
		),
	)
	m.AddRow(10,
		col.New(12).Add(
			text.New(body, props.Text{Size: 9}),
		),
	)
	m.AddRow(4)
}

func (r *PDFRenderer) addInsights(m core.Maroto, insights string) {
	if insights == "" {
		return
	}
	m.AddRow(8,
		col.New(12).Add(
			text.New("Analysis & Insights", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Color: headingColor,
			}),
		),
	)
	for _, line := range strings.Split(insights, "\n") {
		line = stripMarkdown(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		m.AddRow(6,
			col.New(12).Add(
				text.New(line, props.Text{Size: 9}),
			),
		)
	}
	m.AddRow(4)
}

func (r *PDFRenderer) addTable(m core.Maroto, table *models.ResultTable) {
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("Data Preview (Top %d Rows)", pdfTableRows), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Color: headingColor,
			}),
		),
	)

	names := table.ColumnNames()
	colWidth := columnSpan(len(names))

	headerCols := make([]core.Col, 0, len(names))
	for _, name := range names {
		headerCols = append(headerCols, col.New(colWidth).Add(
			text.New(name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}),
		))
	}
	m.AddRow(8, headerCols...)

	rows := table.Rows
	if len(rows) > pdfTableRows {
		rows = rows[:pdfTableRows]
	}
	for _, row := range rows {
		cells := make([]core.Col, 0, len(names))
		for _, name := range names {
			cells = append(cells, col.New(colWidth).Add(
				text.New(formatPDFCell(row[name]), props.Text{Size: 8, Align: align.Center}),
			))
		}
		m.AddRow(6, cells...)
	}
}

// columnSpan divides maroto's 12-column grid across the table's columns.
func columnSpan(n int) int {
	if n <= 0 {
		return 12
	}
	span := 12 / n
	if span < 1 {
		span = 1
	}
	return span
}

func formatPDFCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return fmt.Sprintf("%.2f", x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// stripMarkdown removes the bold/heading markers the model emits.
func stripMarkdown(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "###", "")
	line = strings.ReplaceAll(line, "##", "")
	return line
}
