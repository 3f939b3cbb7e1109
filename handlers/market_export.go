package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"marktimport/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleMarketExportExcel downloads all stored markets as an Excel file.
// Route: GET /markets/export
func HandleMarketExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("markets")
		if err != nil {
			log.Printf("market_export: markets collection not found: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Export fehlgeschlagen.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("market_export: query failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Export fehlgeschlagen.")
		}

		rows := make([]map[string]string, 0, len(records))
		for _, r := range records {
			status := "Inaktiv"
			if r.GetBool("is_active") {
				status = "Aktiv"
			}
			rows = append(rows, map[string]string{
				"market_id":           r.GetString("market_id"),
				"name":                r.GetString("name"),
				"chain":               r.GetString("chain"),
				"channel":             r.GetString("channel"),
				"banner":              r.GetString("banner"),
				"address":             r.GetString("address"),
				"postal_code":         r.GetString("postal_code"),
				"city":                r.GetString("city"),
				"gebietsleiter_name":  r.GetString("gebietsleiter_name"),
				"gebietsleiter_email": r.GetString("gebietsleiter_email"),
				"status":              status,
				"frequency":           strconv.Itoa(r.GetInt("frequency")),
				"current_visits":      strconv.Itoa(r.GetInt("current_visits")),
				"market_tel":          r.GetString("market_tel"),
				"market_email":        r.GetString("market_email"),
			})
		}

		xlsxBytes, err := services.GenerateMarketExcel(services.MarketExportData{
			Title:   "Marktliste",
			Columns: services.MarketExportColumns(),
			Rows:    rows,
		})
		if err != nil {
			log.Printf("market_export: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Export fehlgeschlagen.")
		}

		filename := fmt.Sprintf("Maerkte_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleMarketTemplateDownload downloads the market upload template.
// Route: GET /markets/template
func HandleMarketTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateMarketTemplate()
		if err != nil {
			log.Printf("market_template: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Vorlage konnte nicht erstellt werden.")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="Marktliste_Vorlage.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}
