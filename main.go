package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"marktimport/collections"
	"marktimport/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed demo data and run migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateChainNames(app); err != nil {
			log.Printf("Warning: chain name migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve the static admin frontend from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Market import ────────────────────────────────────────
		se.Router.POST("/markets/import", handlers.HandleMarketValidate(app))
		se.Router.POST("/markets/import/commit", handlers.HandleMarketImportCommit(app))
		se.Router.POST("/markets/import/report", handlers.HandleMarketSkippedReport(app))

		// ── Template & export downloads ──────────────────────────
		se.Router.GET("/markets/template", handlers.HandleMarketTemplateDownload(app))
		se.Router.GET("/markets/export", handlers.HandleMarketExportExcel(app))

		// ── Market list ──────────────────────────────────────────
		se.Router.GET("/markets", handlers.HandleMarketList(app))

		// Redirect home to the admin frontend
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/static/index.html")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
