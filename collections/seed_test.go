package collections_test

import (
	"testing"

	"marktimport/collections"
	"marktimport/testhelpers"
)

func TestSeed_EmptyCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if got := testhelpers.CountMarkets(t, app); got == 0 {
		t.Error("expected demo markets after seeding an empty collection")
	}

	col, _ := app.FindCollectionByNameOrId("markets")
	records, err := app.FindRecordsByFilter(col, "market_id = '100245'", "", 1, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("demo market 100245 missing (err=%v)", err)
	}
	if records[0].GetString("chain") != "Spar" {
		t.Errorf("demo market chain = %q", records[0].GetString("chain"))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMarket(t, app, "M-1", "Bestehender Markt")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if got := testhelpers.CountMarkets(t, app); got != 1 {
		t.Errorf("expected seed to be skipped, found %d markets", got)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error = %v", err)
	}
	count := testhelpers.CountMarkets(t, app)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if got := testhelpers.CountMarkets(t, app); got != count {
		t.Errorf("second seed changed count: %d -> %d", count, got)
	}
}
