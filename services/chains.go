package services

import "strings"

// ChainSonstige is the catch-all chain bucket for markets without a chain.
const ChainSonstige = "Sonstige"

// chainNames maps lowercased chain variants to their canonical display form.
// Lookup is exact-match on the lowercased, trimmed input; no fuzzy matching.
var chainNames = map[string]string{
	"adeg":          "Adeg",
	"billa+":        "Billa+",
	"billa plus":    "Billa+",
	"billa+ privat": "BILLA+ Privat",
	"billa privat":  "BILLA Privat",
	"eurospar":      "Eurospar",
	"futterhaus":    "Futterhaus",
	"hagebau":       "Hagebau",
	"interspar":     "Interspar",
	"spar":          "Spar",
	"spar gourmet":  "Spar Gourmet",
	"zoofachhandel": "Zoofachhandel",
	"hofer":         "Hofer",
	"merkur":        "Merkur",
}

// NormalizeChain maps a free-text chain name to its canonical display form.
// Unknown values pass through unmodified (original casing, untrimmed);
// empty values fall back to ChainSonstige.
func NormalizeChain(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ChainSonstige
	}
	if canonical, ok := chainNames[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return raw
}
