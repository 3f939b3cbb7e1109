package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"marktimport/services"
)

// HandleMarketValidate receives a market list upload, validates and parses
// it, and returns the mapped records plus per-row warnings as JSON. Nothing
// is stored yet; the client posts the parsed markets back to the commit
// endpoint.
// Route: POST /markets/import
func HandleMarketValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Datei zu groß oder ungültige Formulardaten")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Bitte eine Datei auswählen")
		}
		defer file.Close()

		if v := services.ValidateUpload(header.Filename, header.Size); !v.Valid {
			return ErrorToast(e, http.StatusBadRequest, v.Error)
		}

		result, err := services.ParseMarketFile(file, header.Filename)
		if err != nil {
			log.Printf("market_validate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, result)
	}
}

// commitRequest is the JSON body of the commit endpoint.
type commitRequest struct {
	Markets []services.ImportedMarket `json:"markets"`
}

// HandleMarketImportCommit saves previously parsed markets into the markets
// collection.
// Route: POST /markets/import/commit
func HandleMarketImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req commitRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Ungültige Daten")
		}
		if len(req.Markets) == 0 {
			return ErrorToast(e, http.StatusBadRequest,
				"Keine Daten vorhanden. Bitte die Datei erneut hochladen.")
		}

		result, err := services.CommitMarketImport(app, req.Markets)
		if err != nil {
			log.Printf("market_import_commit: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Import fehlgeschlagen. Bitte erneut versuchen.")
		}

		if result.Failed == 0 {
			SetToast(e, "success", fmt.Sprintf("%d Märkte importiert", result.Created+result.Updated))
		}
		return e.JSON(http.StatusOK, result)
	}
}

// HandleMarketSkippedReport downloads the skipped-row report as an Excel file.
// Route: POST /markets/import/report
func HandleMarketSkippedReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var warnings []services.RowWarning
		if err := json.NewDecoder(e.Request.Body).Decode(&warnings); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Ungültige Daten")
		}

		xlsxBytes, err := services.GenerateSkippedReport(warnings)
		if err != nil {
			log.Printf("skipped_report: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Bericht konnte nicht erstellt werden.")
		}

		filename := fmt.Sprintf("Import_Uebersprungen_%s.xlsx", time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
