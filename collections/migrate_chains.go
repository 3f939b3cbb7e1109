package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"marktimport/services"
)

// MigrateChainNames re-normalizes the chain field of all stored markets
// through the canonical chain table. Records imported before a chain variant
// was added to the table pick up the canonical spelling; empty chains fall
// back to the catch-all bucket. Idempotent, runs on startup.
func MigrateChainNames(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("markets")
	if err != nil {
		return fmt.Errorf("markets collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "id != ''", "", 0, 0)
	if err != nil {
		return fmt.Errorf("load markets: %w", err)
	}

	migrated := 0
	for _, r := range records {
		current := r.GetString("chain")
		normalized := services.NormalizeChain(current)
		if normalized == current {
			continue
		}

		r.Set("chain", normalized)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("migrate chain for market %q: %w", r.GetString("market_id"), err)
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("Normalized chain names on %d market(s).\n", migrated)
	}
	return nil
}
