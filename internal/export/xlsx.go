package export

import (
	"unicode/utf8"

	"go-datamonitor/internal/model"

	"github.com/xuri/excelize/v2"
)

// SheetName is the only worksheet in an XLSX export.
const SheetName = "Data Points"

// SheetHeaders label the XLSX columns; they follow Columns one to one.
var SheetHeaders = []string{
	"ID",
	"Parameter",
	"Value",
	"Unit",
	"Timestamp",
	"Engineering Unit",
	"User",
	"Notes",
	"Valid",
	"Validation Message",
}

const (
	minColWidth = 8
	maxColWidth = 100
)

// XLSX builds a single-sheet workbook with a bold header row and every
// column sized to its longest cell.
func XLSX(ms []model.Measurement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	widths := make([]int, len(SheetHeaders))
	header := make([]interface{}, len(SheetHeaders))
	for i, h := range SheetHeaders {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(SheetHeaders))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return nil, err
	}

	for i := range ms {
		m := &ms[i]
		text := record(m)
		row := []interface{}{
			m.ID,
			m.ParameterName,
			m.Value.InexactFloat64(),
			m.UnitOfMeasure,
			text[4],
			text[5],
			text[6],
			text[7],
			m.IsValid,
			text[9],
		}
		for c, s := range text {
			if n := utf8.RuneCountInString(s); n > widths[c] {
				widths[c] = n
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for c, w := range widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(SheetName, col, col, colWidth(w)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colWidth(chars int) float64 {
	w := chars + 2
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return float64(w)
}
