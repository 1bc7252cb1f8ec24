// Package output provides report sinks that write groups to files.
package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

// defaultSheet is the worksheet a new excelize file starts with.
const defaultSheet = "Sheet1"

// Highlight colours (font, fill).
var (
	greenStyle  = excelize.Style{Font: &excelize.Font{Color: "006100"}, Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}}}
	redStyle    = excelize.Style{Font: &excelize.Font{Color: "9C0006"}, Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}}}
	yellowStyle = excelize.Style{Font: &excelize.Font{Color: "D1A52C"}, Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FAD97F"}}}
)

// highlight marks numeric cells of a column that cross a cutoff.
type highlight struct {
	column string
	op     string
	cutoff float64
	style  *excelize.Style
}

var highlights = []highlight{
	{variants.ColCADD, ">=", variants.CADDThreshold, &greenStyle},
	{variants.ColCohortCount, ">", 10, &redStyle},
	{variants.ColGnomadAFPopmax, ">", 0.005, &redStyle},
	{variants.ColGnomadHom, ">", 2, &redStyle},
	{variants.ColQuality, "<", 500, &redStyle},
	{variants.ColGnomadOELoF, "<", 0.35, &yellowStyle},
	{variants.ColPLI, ">", variants.PLIHighlightThreshold, &yellowStyle},
	{variants.ColSIFT, "<", 0.05, &yellowStyle},
	{variants.ColPolyPhen, ">", 0.9, &yellowStyle},
}

// XLSXWriter writes each group to its own worksheet of one workbook.
type XLSXWriter struct {
	path      string
	file      *excelize.File
	highlight bool
	styles    map[*excelize.Style]int
	sheets    int
	logger    *zap.Logger
}

// NewXLSXWriter creates a workbook that is saved to path on Close. With
// highlight set, score columns get conditional formatting.
func NewXLSXWriter(path string, highlight bool) *XLSXWriter {
	return &XLSXWriter{
		path:      path,
		file:      excelize.NewFile(),
		highlight: highlight,
		styles:    make(map[*excelize.Style]int),
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (w *XLSXWriter) SetLogger(l *zap.Logger) {
	w.logger = l
}

// WriteGroup adds a worksheet named after the group holding its header and
// rows. Cells that parse as numbers are stored as numbers.
func (w *XLSXWriter) WriteGroup(g report.Group) error {
	sheet := g.Name
	if w.sheets == 0 {
		if err := w.file.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	} else if _, err := w.file.NewSheet(sheet); err != nil {
		return err
	}
	w.sheets++

	t := g.Table
	if t.Width() == 0 {
		return nil
	}

	header := make([]any, t.Width())
	for i, col := range t.Header() {
		header[i] = col
	}
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := range t.Len() {
		row := t.Row(i)
		values := make([]any, len(row))
		for j, cell := range row {
			values[j] = cellValue(cell)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if w.highlight && t.Len() > 0 {
		if err := w.applyHighlights(sheet, t); err != nil {
			return fmt.Errorf("highlight %s: %w", sheet, err)
		}
	}

	w.logger.Debug("wrote worksheet", zap.String("sheet", sheet), zap.Int("rows", t.Len()))
	return nil
}

// applyHighlights adds one conditional format per highlighted column present
// in t. Text cells such as "." are never highlighted.
func (w *XLSXWriter) applyHighlights(sheet string, t *table.Table) error {
	for _, h := range highlights {
		idx, err := t.Index(h.column)
		if err != nil {
			continue
		}
		style, err := w.style(h.style)
		if err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		first := col + "2"
		ref := fmt.Sprintf("%s:%s%d", first, col, t.Len()+1)
		formula := fmt.Sprintf("AND(ISNUMBER(%s),%s%s%s)",
			first, first, h.op, strconv.FormatFloat(h.cutoff, 'g', -1, 64))
		err = w.file.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{
			{Type: "formula", Criteria: formula, Format: style},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *XLSXWriter) style(s *excelize.Style) (int, error) {
	if id, ok := w.styles[s]; ok {
		return id, nil
	}
	id, err := w.file.NewConditionalStyle(s)
	if err != nil {
		return 0, err
	}
	w.styles[s] = id
	return id, nil
}

// Close saves the workbook and releases it.
func (w *XLSXWriter) Close() error {
	if err := w.file.SaveAs(w.path); err != nil {
		w.file.Close()
		return fmt.Errorf("save workbook: %w", err)
	}
	return w.file.Close()
}

// cellValue converts a report cell for the worksheet: nulls become empty
// cells and finite numbers become floats.
func cellValue(cell string) any {
	if table.IsNull(cell) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return cell
	}
	return v
}
