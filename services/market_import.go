package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxUploadBytes is the upload size limit (10 MiB).
const maxUploadBytes = 10 << 20

// defaultFrequency is the visit frequency assumed when the cell is missing
// or not numeric (12 visits per year, i.e. monthly).
const defaultFrequency = 12

// User-facing messages (German, fixed catalog).
const (
	msgInvalidExtension = "Ungültiges Dateiformat. Bitte eine CSV- oder Excel-Datei (.csv, .xlsx, .xls) hochladen."
	msgFileTooLarge     = "Die Datei ist zu groß. Maximum: 10MB"
)

// File-level errors. Row-level problems never surface as errors; they are
// logged and collected as RowWarnings instead.
var (
	// ErrRead signals an I/O failure while reading the uploaded bytes.
	ErrRead = errors.New("Fehler beim Lesen der Datei")

	// ErrEmptyFile signals a file with fewer than two rows (header + data).
	ErrEmptyFile = errors.New("Die Datei enthält keine Daten")
)

// ParseError signals a file whose bytes could not be read as a workbook.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return "Fehler beim Verarbeiten der Datei: " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UploadValidation is the result of the pre-flight file check.
type UploadValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// RowWarning records one data row that was skipped during mapping.
type RowWarning struct {
	Row     int    `json:"row"` // 1-based row number in the source file
	Message string `json:"message"`
}

// ImportFileResult is returned after parsing an uploaded market list.
type ImportFileResult struct {
	TotalRows int              `json:"total_rows"` // data rows, including blank ones
	Imported  int              `json:"imported"`
	Skipped   int              `json:"skipped"` // rows dropped with a warning
	Markets   []ImportedMarket `json:"markets"`
	Warnings  []RowWarning     `json:"warnings,omitempty"`
}

// ValidateUpload checks extension and size before any parsing is attempted.
// It never opens the file.
func ValidateUpload(fileName string, size int64) UploadValidation {
	lowerName := strings.ToLower(fileName)
	ok := strings.HasSuffix(lowerName, ".csv") ||
		strings.HasSuffix(lowerName, ".xlsx") ||
		strings.HasSuffix(lowerName, ".xls")
	if !ok {
		return UploadValidation{Valid: false, Error: msgInvalidExtension}
	}
	if size > maxUploadBytes {
		return UploadValidation{Valid: false, Error: msgFileTooLarge}
	}
	return UploadValidation{Valid: true}
}

// ParseMarketFile reads an uploaded market list (CSV or Excel, first sheet
// only) and maps its data rows to ImportedMarket records.
//
// File-level failures (read, parse, empty file) abort the whole call. Row
// failures never do: offending rows are logged, collected as warnings and
// skipped, so a partial file still imports.
func ParseMarketFile(file io.Reader, fileName string) (*ImportFileResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("markt_import: read %q: %v", fileName, err)
		return nil, ErrRead
	}

	var rows [][]string
	if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		rows, err = readCSV(data)
	} else {
		rows, err = readExcel(data)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	return mapMarketRows(rows), nil
}

// readCSV parses CSV bytes into a row matrix. German exports are often
// semicolon-separated, so the delimiter is sniffed from the first line.
func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return rows, nil
}

// sniffDelimiter picks ';' over ',' when the header line contains more
// semicolons than commas.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte{';'}) > bytes.Count(header, []byte{','}) {
		return ';'
	}
	return ','
}

// readExcel parses workbook bytes and returns the first sheet as a row matrix.
func readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return rows, nil
}

// mapMarketRows maps data rows (row 0 is the header and is never inspected)
// to records, in original order. Blank rows are skipped silently; rejected
// rows are skipped with a warning.
func mapMarketRows(rows [][]string) *ImportFileResult {
	result := &ImportFileResult{
		TotalRows: len(rows) - 1,
		Markets:   make([]ImportedMarket, 0, len(rows)-1),
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		market, err := mapMarketRowSafe(row, i)
		if err != nil {
			warn := RowWarning{Row: i + 1, Message: fmt.Sprintf("Fehler in Zeile %d: %v", i+1, err)}
			log.Printf("markt_import: %s", warn.Message)
			result.Warnings = append(result.Warnings, warn)
			continue
		}
		if market == nil {
			warn := RowWarning{Row: i + 1, Message: fmt.Sprintf("Zeile %d: ID oder Name fehlt", i+1)}
			log.Printf("markt_import: %s", warn.Message)
			result.Warnings = append(result.Warnings, warn)
			continue
		}

		result.Markets = append(result.Markets, *market)
	}

	result.Imported = len(result.Markets)
	result.Skipped = len(result.Warnings)
	return result
}

// mapMarketRowSafe converts a panic during row mapping into a row error, so
// one malformed row can never abort the batch.
func mapMarketRowSafe(row []string, rowIdx int) (market *ImportedMarket, err error) {
	defer func() {
		if r := recover(); r != nil {
			market = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return mapMarketRow(row, rowIdx)
}

// mapMarketRow maps one data row to a record via the marketColumns schema.
// A nil record without error means the row was rejected (missing ID or
// name) — a normal outcome, not a failure.
func mapMarketRow(row []string, rowIdx int) (*ImportedMarket, error) {
	m := &ImportedMarket{}
	for _, col := range marketColumns {
		col.Assign(m, cellAt(row, col.Position))
	}

	if m.InternalID == "" || m.Name == "" {
		return nil, nil
	}

	m.ID = marketRecordID(m.InternalID, rowIdx)
	m.CurrentVisits = 0
	return m, nil
}

// marketRecordID returns the source market identifier, or a synthesized
// IMPORT-NNNN id from the 0-based row index when it is empty. The fallback
// is unreachable while mapMarketRow rejects empty-ID rows first; it is kept
// for callers that relax that requirement.
func marketRecordID(internalID string, rowIdx int) string {
	if internalID != "" {
		return internalID
	}
	return fmt.Sprintf("IMPORT-%04d", rowIdx)
}

// parseFrequency parses the visit frequency cell. Missing or non-numeric
// values default to defaultFrequency; the result is rounded and never
// below 1.
func parseFrequency(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultFrequency
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return defaultFrequency
	}
	freq := int(math.Round(parsed))
	if freq < 1 {
		freq = 1
	}
	return freq
}
