package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type marketDef struct {
	marketID   string
	name       string
	chain      string
	channel    string
	address    string
	postalCode string
	city       string
	frequency  int
	isActive   bool
}

var demoMarkets = []marketDef{
	{
		marketID:   "100245",
		name:       "Spar Graz Hauptplatz",
		chain:      "Spar",
		channel:    "LEH",
		address:    "Hauptplatz 1",
		postalCode: "8010",
		city:       "Graz",
		frequency:  12,
		isActive:   true,
	},
	{
		marketID:   "100318",
		name:       "Interspar Wien Mitte",
		chain:      "Interspar",
		channel:    "LEH",
		address:    "Landstraßer Hauptstraße 1b",
		postalCode: "1030",
		city:       "Wien",
		frequency:  24,
		isActive:   true,
	},
	{
		marketID:   "100422",
		name:       "Futterhaus Linz Urfahr",
		chain:      "Futterhaus",
		channel:    "Fachhandel",
		address:    "Hauptstraße 33",
		postalCode: "4040",
		city:       "Linz",
		frequency:  6,
		isActive:   false,
	},
}

// Seed inserts a handful of demo markets when the markets collection is
// empty, so a fresh install has data to browse.
func Seed(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("markets")
	if err != nil {
		return fmt.Errorf("markets collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("check existing markets: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Markets already present, skipping seed.")
		return nil
	}

	for _, def := range demoMarkets {
		record := core.NewRecord(col)
		record.Set("market_id", def.marketID)
		record.Set("name", def.name)
		record.Set("chain", def.chain)
		record.Set("channel", def.channel)
		record.Set("address", def.address)
		record.Set("postal_code", def.postalCode)
		record.Set("city", def.city)
		record.Set("frequency", def.frequency)
		record.Set("current_visits", 0)
		record.Set("is_active", def.isActive)

		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed market %q: %w", def.marketID, err)
		}
	}

	log.Printf("Seeded %d demo markets.\n", len(demoMarkets))
	return nil
}
