// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"marktimport/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMarket creates a market record with the given business key and
// name and returns it.
func CreateTestMarket(t *testing.T, app *pocketbase.PocketBase, marketID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("markets")
	if err != nil {
		t.Fatalf("failed to find markets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("market_id", marketID)
	record.Set("name", name)
	record.Set("chain", "Sonstige")
	record.Set("frequency", 12)
	record.Set("current_visits", 0)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test market: %v", err)
	}

	return record
}

// CountMarkets returns the number of stored market records.
func CountMarkets(t *testing.T, app *pocketbase.PocketBase) int {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("markets")
	if err != nil {
		t.Fatalf("failed to find markets collection: %v", err)
	}

	records, err := app.FindRecordsByFilter(col, "id != ''", "", 0, 0)
	if err != nil {
		t.Fatalf("failed to count markets: %v", err)
	}
	return len(records)
}
