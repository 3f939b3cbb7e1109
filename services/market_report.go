package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateSkippedReport creates a downloadable .xlsx file listing the rows
// that were skipped during an import, with the reason per row.
func GenerateSkippedReport(warnings []RowWarning) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Übersprungene Zeilen"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Zeile")
	f.SetCellValue(sheet, "B1", "Grund")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 60)

	for i, w := range warnings {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, w.Row)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(w.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write skipped report: %w", err)
	}
	return buf.Bytes(), nil
}
