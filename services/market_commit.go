package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const importBatchSize = 100

// ImportResult holds the outcome of a batch commit operation.
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError represents a failure to save one parsed market.
type ImportRowError struct {
	Row      int    `json:"row"`
	MarketID string `json:"market_id,omitempty"`
	Message  string `json:"message"`
}

// CommitMarketImport saves parsed markets into the markets collection in
// chunks of importBatchSize. Markets whose market_id already exists are
// updated in place instead of inserted again.
//
// Within a chunk, any failing save rolls back the whole chunk and records
// the error; remaining chunks are still processed.
func CommitMarketImport(app *pocketbase.PocketBase, markets []ImportedMarket) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("markets")
	if err != nil {
		return nil, fmt.Errorf("markets collection not found: %w", err)
	}

	existing, err := buildMarketIDLookup(app, col)
	if err != nil {
		return nil, fmt.Errorf("build market lookup: %w", err)
	}

	result := &ImportResult{TotalRows: len(markets)}

	for chunkStart := 0; chunkStart < len(markets); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(markets) {
			chunkEnd = len(markets)
		}
		chunk := markets[chunkStart:chunkEnd]

		created, updated, chunkErrors := saveChunk(app, col, chunk, chunkStart, existing)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk) // entire chunk rolled back
		} else {
			result.Created += created
			result.Updated += updated
		}
	}

	return result, nil
}

// saveChunk saves one batch of markets inside a RunInTransaction block.
// If any save fails, the whole chunk is rolled back.
func saveChunk(
	app *pocketbase.PocketBase,
	col *core.Collection,
	markets []ImportedMarket,
	startOffset int,
	existing map[string]string,
) (created int, updated int, chunkErrors []ImportRowError) {
	err := app.RunInTransaction(func(txApp core.App) error {
		for i, m := range markets {
			rowNum := startOffset + i + 1

			var record *core.Record
			if recordID, ok := existing[m.InternalID]; ok {
				found, err := txApp.FindRecordById("markets", recordID)
				if err != nil {
					chunkErrors = append(chunkErrors, ImportRowError{
						Row:      rowNum,
						MarketID: m.InternalID,
						Message:  fmt.Sprintf("Markt nicht gefunden: %s", err.Error()),
					})
					return fmt.Errorf("lookup failed at row %d: %w", rowNum, err)
				}
				record = found
				updated++
			} else {
				record = core.NewRecord(col)
				record.Set("current_visits", m.CurrentVisits)
				created++
			}

			record.Set("market_id", m.InternalID)
			record.Set("name", m.Name)
			record.Set("address", m.Address)
			record.Set("city", m.City)
			record.Set("postal_code", m.PostalCode)
			record.Set("chain", m.Chain)
			record.Set("frequency", m.Frequency)
			record.Set("is_active", m.IsActive)
			record.Set("channel", m.Channel)
			record.Set("banner", m.Banner)
			record.Set("gebietsleiter_name", m.GebietsleiterName)
			record.Set("gebietsleiter_email", m.GebietsleiterEmail)
			record.Set("market_tel", m.MarketTel)
			record.Set("market_email", m.MarketEmail)

			if err := txApp.Save(record); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:      rowNum,
					MarketID: m.InternalID,
					Message:  fmt.Sprintf("Speichern fehlgeschlagen: %s", err.Error()),
				})
				return fmt.Errorf("save failed at row %d: %w", rowNum, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("markt_commit: chunk rolled back: %v", err)
		created, updated = 0, 0
		if len(chunkErrors) == 0 {
			chunkErrors = append(chunkErrors, ImportRowError{
				Row:     startOffset + 1,
				Message: fmt.Sprintf("Transaktion fehlgeschlagen: %s", err.Error()),
			})
		}
	}

	return created, updated, chunkErrors
}

// buildMarketIDLookup returns a map of market_id -> record id for all stored
// markets.
func buildMarketIDLookup(app *pocketbase.PocketBase, col *core.Collection) (map[string]string, error) {
	records, err := app.FindRecordsByFilter(col, "market_id != ''", "", 0, 0)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(records))
	for _, r := range records {
		if id := r.GetString("market_id"); id != "" {
			lookup[id] = r.Id
		}
	}
	return lookup, nil
}
