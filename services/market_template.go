package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateMarketTemplate creates a downloadable .xlsx upload template with
// the fixed positional column layout and one example row. Unmapped positions
// stay as blank columns so filled-in templates line up with the importer.
func GenerateMarketTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Märkte"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(marketColumnCount())

	for _, col := range marketColumns {
		cell := fmt.Sprintf("%s1", columns[col.Position])
		f.SetCellValue(sheetName, cell, col.Header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		width := float64(len(col.Header)) * 1.3
		if width < 12 {
			width = 12
		}
		f.SetColWidth(sheetName, columns[col.Position], columns[col.Position], width)
	}

	example := map[string]string{
		"internalId":         "100245",
		"channel":            "LEH",
		"banner":             "Spar",
		"chain":              "Spar",
		"name":               "Spar Graz Hauptplatz",
		"postalCode":         "8010",
		"city":               "Graz",
		"address":            "Hauptplatz 1",
		"gebietsleiterName":  "Maria Huber",
		"gebietsleiterEmail": "maria.huber@example.com",
		"status":             "Aktiv",
		"frequency":          "12",
		"marketTel":          "+43 316 123456",
		"marketEmail":        "graz@example.com",
	}
	for _, col := range marketColumns {
		cell := fmt.Sprintf("%s2", columns[col.Position])
		f.SetCellValue(sheetName, cell, example[col.Field])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
