package services

import "strings"

// ImportedMarket is one normalized market row from an uploaded market list.
type ImportedMarket struct {
	ID            string `json:"id"`
	InternalID    string `json:"internalId"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Chain         string `json:"chain"`
	Frequency     int    `json:"frequency"`
	CurrentVisits int    `json:"currentVisits"`
	IsActive      bool   `json:"isActive"`

	Channel            string `json:"channel,omitempty"`
	Banner             string `json:"banner,omitempty"`
	GebietsleiterName  string `json:"gebietsleiterName,omitempty"`
	GebietsleiterEmail string `json:"gebietsleiterEmail,omitempty"`
	MarketTel          string `json:"marketTel,omitempty"`
	MarketEmail        string `json:"marketEmail,omitempty"`
}

// marketColumn maps one fixed cell position of an uploaded market list to a
// field of ImportedMarket. Uploads are positional: the header row is ignored
// and positions not listed here are skipped.
type marketColumn struct {
	Position int
	Field    string // JSON field name, used in diagnostics
	Header   string // German header label for the upload template
	Assign   func(m *ImportedMarket, raw string)
}

// marketColumns is the fixed column layout of market list uploads.
// Changing the layout is an edit to this table, not to the mapping code.
var marketColumns = []marketColumn{
	{Position: 0, Field: "internalId", Header: "Kundennummer", Assign: func(m *ImportedMarket, raw string) {
		m.InternalID = strings.TrimSpace(raw)
	}},
	{Position: 2, Field: "channel", Header: "Kanal", Assign: func(m *ImportedMarket, raw string) {
		m.Channel = strings.TrimSpace(raw)
	}},
	{Position: 4, Field: "banner", Header: "Banner", Assign: func(m *ImportedMarket, raw string) {
		m.Banner = strings.TrimSpace(raw)
	}},
	{Position: 5, Field: "chain", Header: "Kette", Assign: func(m *ImportedMarket, raw string) {
		m.Chain = NormalizeChain(raw)
	}},
	{Position: 7, Field: "name", Header: "Marktname", Assign: func(m *ImportedMarket, raw string) {
		m.Name = strings.TrimSpace(raw)
	}},
	{Position: 8, Field: "postalCode", Header: "PLZ", Assign: func(m *ImportedMarket, raw string) {
		m.PostalCode = strings.TrimSpace(raw)
	}},
	{Position: 9, Field: "city", Header: "Ort", Assign: func(m *ImportedMarket, raw string) {
		m.City = strings.TrimSpace(raw)
	}},
	{Position: 10, Field: "address", Header: "Straße", Assign: func(m *ImportedMarket, raw string) {
		m.Address = strings.TrimSpace(raw)
	}},
	{Position: 11, Field: "gebietsleiterName", Header: "Gebietsleiter", Assign: func(m *ImportedMarket, raw string) {
		m.GebietsleiterName = strings.TrimSpace(raw)
	}},
	{Position: 12, Field: "gebietsleiterEmail", Header: "Gebietsleiter E-Mail", Assign: func(m *ImportedMarket, raw string) {
		m.GebietsleiterEmail = strings.TrimSpace(raw)
	}},
	{Position: 13, Field: "status", Header: "Status", Assign: func(m *ImportedMarket, raw string) {
		m.IsActive = strings.EqualFold(strings.TrimSpace(raw), "aktiv")
	}},
	{Position: 15, Field: "frequency", Header: "Frequenz", Assign: func(m *ImportedMarket, raw string) {
		m.Frequency = parseFrequency(raw)
	}},
	{Position: 17, Field: "marketTel", Header: "Telefon", Assign: func(m *ImportedMarket, raw string) {
		m.MarketTel = strings.TrimSpace(raw)
	}},
	{Position: 18, Field: "marketEmail", Header: "E-Mail", Assign: func(m *ImportedMarket, raw string) {
		m.MarketEmail = strings.TrimSpace(raw)
	}},
}

// marketColumnCount is the width of the positional layout (highest mapped
// position + 1). Used by the upload template so ignored columns stay in place.
func marketColumnCount() int {
	max := 0
	for _, col := range marketColumns {
		if col.Position > max {
			max = col.Position
		}
	}
	return max + 1
}

// cellAt returns the cell at pos, or "" when the row is shorter.
func cellAt(row []string, pos int) string {
	if pos < len(row) {
		return row[pos]
	}
	return ""
}
