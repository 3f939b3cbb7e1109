package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the markets collection exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "markets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "market_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "postal_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "chain", Required: false})
		c.Fields.Add(&core.NumberField{Name: "frequency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "current_visits", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_active", Required: false})
		c.Fields.Add(&core.TextField{Name: "channel", Required: false})
		c.Fields.Add(&core.TextField{Name: "banner", Required: false})
		c.Fields.Add(&core.TextField{Name: "gebietsleiter_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "gebietsleiter_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "market_tel", Required: false})
		c.Fields.Add(&core.TextField{Name: "market_email", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
