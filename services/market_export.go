package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MarketExportColumn defines a column in the market export spreadsheet.
type MarketExportColumn struct {
	Header string
	Field  string  // field name on the PocketBase record
	Width  float64 // column width in Excel units
}

// MarketExportData holds all data needed for a market export.
type MarketExportData struct {
	Title   string
	Columns []MarketExportColumn
	Rows    []map[string]string // each row is field -> value
}

// MarketExportColumns returns the export column layout.
func MarketExportColumns() []MarketExportColumn {
	return []MarketExportColumn{
		{Header: "Kundennummer", Field: "market_id", Width: 16},
		{Header: "Marktname", Field: "name", Width: 32},
		{Header: "Kette", Field: "chain", Width: 18},
		{Header: "Kanal", Field: "channel", Width: 12},
		{Header: "Banner", Field: "banner", Width: 16},
		{Header: "Straße", Field: "address", Width: 30},
		{Header: "PLZ", Field: "postal_code", Width: 10},
		{Header: "Ort", Field: "city", Width: 20},
		{Header: "Gebietsleiter", Field: "gebietsleiter_name", Width: 22},
		{Header: "Gebietsleiter E-Mail", Field: "gebietsleiter_email", Width: 28},
		{Header: "Status", Field: "status", Width: 10},
		{Header: "Frequenz", Field: "frequency", Width: 10},
		{Header: "Besuche", Field: "current_visits", Width: 10},
		{Header: "Telefon", Field: "market_tel", Width: 18},
		{Header: "E-Mail", Field: "market_email", Width: 28},
	}
}

// GenerateMarketExcel creates a styled Excel file from market export data.
func GenerateMarketExcel(data MarketExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Märkte"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	columns := columnLetters(len(data.Columns))
	lastCol := columns[len(columns)-1]

	for i, col := range data.Columns {
		f.SetColWidth(sheetName, columns[i], columns[i], col.Width)
	}

	// Row 1: title, row 2: count, row 4: headers, data from row 5.
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Gesamt: %d Märkte", len(data.Rows)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	for i, col := range data.Columns {
		cell := fmt.Sprintf("%s4", columns[i])
		f.SetCellValue(sheetName, cell, col.Header)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	})

	for rowIdx, rowData := range data.Rows {
		rowStr := fmt.Sprintf("%d", rowIdx+5)
		for colIdx, col := range data.Columns {
			cell := columns[colIdx] + rowStr
			f.SetCellValue(sheetName, cell, sanitizeExcelCell(rowData[col.Field]))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}
