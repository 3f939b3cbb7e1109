package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	defaultPage      = 1
	defaultSortBy    = "name"
	defaultSortOrder = "asc"
)

// marketListParams holds parsed query parameters for the market list.
type marketListParams struct {
	Page      int
	PageSize  int
	Search    string
	Chain     string
	SortBy    string
	SortOrder string
}

// parseMarketListParams extracts and validates query parameters from the request.
func parseMarketListParams(e *core.RequestEvent) marketListParams {
	params := marketListParams{
		Page:      defaultPage,
		PageSize:  defaultPageSize,
		SortBy:    defaultSortBy,
		SortOrder: defaultSortOrder,
	}

	if p := e.Request.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			params.Page = v
		}
	}

	if ps := e.Request.URL.Query().Get("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
			params.PageSize = v
		}
	}

	params.Search = strings.TrimSpace(e.Request.URL.Query().Get("search"))
	params.Chain = strings.TrimSpace(e.Request.URL.Query().Get("chain"))

	if sb := e.Request.URL.Query().Get("sort_by"); sb != "" {
		allowedSorts := map[string]bool{
			"market_id": true, "name": true, "chain": true, "city": true,
			"postal_code": true, "frequency": true, "current_visits": true,
			"created": true, "updated": true,
		}
		if allowedSorts[sb] {
			params.SortBy = sb
		}
	}

	if so := e.Request.URL.Query().Get("sort_order"); so == "desc" {
		params.SortOrder = "desc"
	}

	return params
}

// buildMarketFilter constructs a PocketBase filter string and bind params.
func buildMarketFilter(params marketListParams) (string, map[string]any) {
	filter := "id != ''"
	bind := map[string]any{}

	if params.Search != "" {
		filter += " && (market_id ~ {:search} || name ~ {:search} || city ~ {:search} || chain ~ {:search})"
		bind["search"] = params.Search
	}
	if params.Chain != "" {
		filter += " && chain = {:chain}"
		bind["chain"] = params.Chain
	}

	return filter, bind
}

// buildSortString returns the PocketBase sort expression.
func buildSortString(sortBy, sortOrder string) string {
	if sortOrder == "desc" {
		return "-" + sortBy
	}
	return sortBy
}

// marketListEntry is one market in the JSON list response.
type marketListEntry struct {
	ID            string `json:"id"`
	MarketID      string `json:"market_id"`
	Name          string `json:"name"`
	Chain         string `json:"chain"`
	Channel       string `json:"channel,omitempty"`
	Banner        string `json:"banner,omitempty"`
	Address       string `json:"address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	City          string `json:"city,omitempty"`
	Frequency     int    `json:"frequency"`
	CurrentVisits int    `json:"current_visits"`
	IsActive      bool   `json:"is_active"`
}

// marketListResponse is the JSON shape of the market list endpoint.
type marketListResponse struct {
	Markets    []marketListEntry `json:"markets"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// HandleMarketList returns a handler that lists stored markets with paging,
// search and chain filtering.
// Route: GET /markets
func HandleMarketList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseMarketListParams(e)

		filter, bind := buildMarketFilter(params)
		sortStr := buildSortString(params.SortBy, params.SortOrder)

		col, err := app.FindCollectionByNameOrId("markets")
		if err != nil {
			log.Printf("market_list: markets collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		allRecords, err := app.FindRecordsByFilter(col, filter, sortStr, 0, 0, bind)
		if err != nil {
			log.Printf("market_list: count query failed: %v", err)
			allRecords = nil
		}
		totalCount := len(allRecords)

		totalPages := int(math.Ceil(float64(totalCount) / float64(params.PageSize)))
		if totalPages < 1 {
			totalPages = 1
		}
		if params.Page > totalPages {
			params.Page = totalPages
		}

		offset := (params.Page - 1) * params.PageSize
		records, err := app.FindRecordsByFilter(col, filter, sortStr, params.PageSize, offset, bind)
		if err != nil {
			log.Printf("market_list: page query failed: %v", err)
			records = nil
		}

		entries := make([]marketListEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, marketListEntry{
				ID:            r.Id,
				MarketID:      r.GetString("market_id"),
				Name:          r.GetString("name"),
				Chain:         r.GetString("chain"),
				Channel:       r.GetString("channel"),
				Banner:        r.GetString("banner"),
				Address:       r.GetString("address"),
				PostalCode:    r.GetString("postal_code"),
				City:          r.GetString("city"),
				Frequency:     r.GetInt("frequency"),
				CurrentVisits: r.GetInt("current_visits"),
				IsActive:      r.GetBool("is_active"),
			})
		}

		return e.JSON(http.StatusOK, marketListResponse{
			Markets:    entries,
			TotalCount: totalCount,
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalPages: totalPages,
		})
	}
}
