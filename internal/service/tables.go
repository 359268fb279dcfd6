package service

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Grouping thresholds in PDF points. Text fragments within rowYTolerance of
// each other belong to the same row; a horizontal gap wider than
// cellGapFactor font sizes starts a new cell.
const (
	rowYTolerance   = 2.0
	cellGapFactor   = 2.5
	spaceGapFactor  = 0.3
	defaultFontSize = 12.0
	minTableRows    = 2
)

// tableDetector reconstructs simple tables from positioned page text.
type tableDetector struct{}

func newTableDetector() *tableDetector {
	return &tableDetector{}
}

// detect returns rendered table text keyed by 1-indexed page number. Pages
// without detectable tables are absent from the map.
func (d *tableDetector) detect(pdfBytes []byte) (tables map[int]string, err error) {
	// The ledongthuc parser panics on malformed content streams rather
	// than returning errors; table detection must degrade, not abort.
	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = fmt.Errorf("panic during table detection: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	tables = make(map[int]string)
	for i := 1; i <= reader.NumPage(); i++ {
		if rendered := pageTables(reader, i); rendered != "" {
			tables[i] = rendered
		}
	}
	return tables, nil
}

// pageTables renders the tables of a single page, swallowing parser panics
// so one bad content stream cannot take the other pages' tables with it.
func pageTables(reader *pdf.Reader, pageNum int) (rendered string) {
	defer func() {
		if r := recover(); r != nil {
			rendered = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	return renderTables(groupRows(page.Content().Text))
}

// textRow is one horizontal band of positioned text, split into cells.
type textRow struct {
	cells []string
}

// groupRows buckets positioned text fragments into rows by Y coordinate,
// reading top to bottom, and splits each row into cells on wide horizontal
// gaps. PDF Y coordinates grow upward.
func groupRows(texts []pdf.Text) []textRow {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > rowYTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []textRow
	var cells []string
	var cell strings.Builder
	rowY := sorted[0].Y
	prevEnd := sorted[0].X

	flushCell := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}
	flushRow := func() {
		flushCell()
		if len(cells) > 0 {
			rows = append(rows, textRow{cells: cells})
		}
		cells = nil
	}

	for idx, t := range sorted {
		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = defaultFontSize
		}

		if math.Abs(t.Y-rowY) > rowYTolerance {
			flushRow()
			rowY = t.Y
		} else if idx > 0 {
			gap := t.X - prevEnd
			if gap > cellGapFactor*fontSize {
				flushCell()
			} else if gap > spaceGapFactor*fontSize {
				cell.WriteByte(' ')
			}
		}

		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flushRow()

	return rows
}

// renderTables renders runs of consecutive multi-cell rows as table text:
// cells joined with " | ", rows with newlines, separate tables with blank
// lines. Rows whose cells are all underscore ruling are not table content.
func renderTables(rows []textRow) string {
	var tables []string
	var current []string

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, strings.Join(current, "\n"))
		}
		current = nil
	}

	for _, row := range rows {
		if isTableRow(row) {
			current = append(current, strings.Join(row.cells, " | "))
			continue
		}
		flush()
	}
	flush()

	return strings.Join(tables, "\n\n")
}

// isTableRow reports whether a row looks like table content: at least two
// cells, at least one of which is not form-field ruling.
func isTableRow(row textRow) bool {
	if len(row.cells) < 2 {
		return false
	}
	for _, cell := range row.cells {
		if !formFieldPattern.MatchString(cell) {
			return true
		}
	}
	return false
}
