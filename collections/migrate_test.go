package collections_test

import (
	"testing"

	"marktimport/collections"
	"marktimport/testhelpers"
)

func TestMigrateChainNames(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	variants := map[string]string{ // market_id -> raw chain
		"M-1": "SPAR",
		"M-2": "billa plus",
		"M-3": "",
		"M-4": "Acme",
	}
	col, _ := app.FindCollectionByNameOrId("markets")
	for id, chain := range variants {
		r := testhelpers.CreateTestMarket(t, app, id, "Markt "+id)
		r.Set("chain", chain)
		if err := app.Save(r); err != nil {
			t.Fatalf("prepare market %s: %v", id, err)
		}
	}

	if err := collections.MigrateChainNames(app); err != nil {
		t.Fatalf("MigrateChainNames() error = %v", err)
	}

	want := map[string]string{
		"M-1": "Spar",
		"M-2": "Billa+",
		"M-3": "Sonstige",
		"M-4": "Acme", // unknown chains stay as they are
	}
	for id, expected := range want {
		records, err := app.FindRecordsByFilter(col, "market_id = {:id}", "", 1, 0,
			map[string]any{"id": id})
		if err != nil || len(records) != 1 {
			t.Fatalf("market %s missing (err=%v)", id, err)
		}
		if got := records[0].GetString("chain"); got != expected {
			t.Errorf("market %s chain = %q, want %q", id, got, expected)
		}
	}
}

func TestMigrateChainNames_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	r := testhelpers.CreateTestMarket(t, app, "M-1", "Markt")
	r.Set("chain", "spar")
	if err := app.Save(r); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	if err := collections.MigrateChainNames(app); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := collections.MigrateChainNames(app); err != nil {
		t.Fatalf("second run: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId("markets")
	records, _ := app.FindRecordsByFilter(col, "market_id = 'M-1'", "", 1, 0)
	if got := records[0].GetString("chain"); got != "Spar" {
		t.Errorf("chain = %q, want Spar", got)
	}
}

func TestMigrateChainNames_EmptyCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.MigrateChainNames(app); err != nil {
		t.Errorf("MigrateChainNames() on empty collection: %v", err)
	}
}
