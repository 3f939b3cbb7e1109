package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marktimport/testhelpers"
)

func TestParseMarketListParams_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	params := parseMarketListParams(e)

	if params.Page != 1 || params.PageSize != defaultPageSize {
		t.Errorf("page/size = %d/%d, want 1/%d", params.Page, params.PageSize, defaultPageSize)
	}
	if params.SortBy != "name" || params.SortOrder != "asc" {
		t.Errorf("sort = %s %s, want name asc", params.SortBy, params.SortOrder)
	}
	if params.Search != "" || params.Chain != "" {
		t.Errorf("search/chain should default to empty, got %q/%q", params.Search, params.Chain)
	}
}

func TestParseMarketListParams_Values(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/markets?page=3&page_size=50&search=+Spar+&chain=Billa%2B&sort_by=frequency&sort_order=desc", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	params := parseMarketListParams(e)

	if params.Page != 3 || params.PageSize != 50 {
		t.Errorf("page/size = %d/%d, want 3/50", params.Page, params.PageSize)
	}
	if params.Search != "Spar" {
		t.Errorf("search = %q, want trimmed 'Spar'", params.Search)
	}
	if params.Chain != "Billa+" {
		t.Errorf("chain = %q", params.Chain)
	}
	if params.SortBy != "frequency" || params.SortOrder != "desc" {
		t.Errorf("sort = %s %s", params.SortBy, params.SortOrder)
	}
}

func TestParseMarketListParams_InvalidValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/markets?page=0&page_size=999&sort_by=secret_column&sort_order=sideways", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	params := parseMarketListParams(e)

	if params.Page != 1 {
		t.Errorf("page = %d, want fallback 1", params.Page)
	}
	if params.PageSize != defaultPageSize {
		t.Errorf("page_size = %d, want fallback %d", params.PageSize, defaultPageSize)
	}
	if params.SortBy != "name" {
		t.Errorf("sort_by = %q, unknown columns must fall back to name", params.SortBy)
	}
	if params.SortOrder != "asc" {
		t.Errorf("sort_order = %q, want asc", params.SortOrder)
	}
}

func TestBuildMarketFilter(t *testing.T) {
	filter, bind := buildMarketFilter(marketListParams{})
	if filter != "id != ''" || len(bind) != 0 {
		t.Errorf("empty params: filter=%q bind=%v", filter, bind)
	}

	filter, bind = buildMarketFilter(marketListParams{Search: "Graz"})
	if bind["search"] != "Graz" {
		t.Errorf("search bind = %v", bind)
	}
	if filter == "id != ''" {
		t.Error("search did not extend filter")
	}

	filter, bind = buildMarketFilter(marketListParams{Chain: "Spar"})
	if bind["chain"] != "Spar" {
		t.Errorf("chain bind = %v", bind)
	}
	if filter == "id != ''" {
		t.Error("chain did not extend filter")
	}
}

func TestBuildSortString(t *testing.T) {
	if got := buildSortString("name", "asc"); got != "name" {
		t.Errorf("asc sort = %q", got)
	}
	if got := buildSortString("frequency", "desc"); got != "-frequency" {
		t.Errorf("desc sort = %q", got)
	}
}

func TestHandleMarketList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMarket(t, app, "M-2", "Billa Wien")
	testhelpers.CreateTestMarket(t, app, "M-1", "Adeg Graz")
	testhelpers.CreateTestMarket(t, app, "M-3", "Spar Linz")

	handler := HandleMarketList(app)

	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp marketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.TotalCount != 3 || len(resp.Markets) != 3 {
		t.Fatalf("TotalCount/len = %d/%d, want 3/3", resp.TotalCount, len(resp.Markets))
	}

	// Default sort is by name ascending.
	if resp.Markets[0].Name != "Adeg Graz" || resp.Markets[2].Name != "Spar Linz" {
		t.Errorf("unexpected order: %s ... %s", resp.Markets[0].Name, resp.Markets[2].Name)
	}
}

func TestHandleMarketList_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMarket(t, app, "M-1", "Spar Graz")
	testhelpers.CreateTestMarket(t, app, "M-2", "Billa Wien")

	handler := HandleMarketList(app)

	req := httptest.NewRequest(http.MethodGet, "/markets?search=Spar", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp marketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Markets) != 1 {
		t.Fatalf("TotalCount/len = %d/%d, want 1/1", resp.TotalCount, len(resp.Markets))
	}
	if resp.Markets[0].MarketID != "M-1" {
		t.Errorf("matched market = %q", resp.Markets[0].MarketID)
	}
}

func TestHandleMarketList_Paging(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMarket(t, app, "M-1", "Markt A")
	testhelpers.CreateTestMarket(t, app, "M-2", "Markt B")
	testhelpers.CreateTestMarket(t, app, "M-3", "Markt C")

	handler := HandleMarketList(app)

	req := httptest.NewRequest(http.MethodGet, "/markets?page=2&page_size=2", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp marketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.TotalPages != 2 || resp.Page != 2 {
		t.Errorf("TotalPages/Page = %d/%d, want 2/2", resp.TotalPages, resp.Page)
	}
	if len(resp.Markets) != 1 || resp.Markets[0].Name != "Markt C" {
		t.Errorf("second page = %+v", resp.Markets)
	}
}

func TestHandleMarketList_PageBeyondEnd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMarket(t, app, "M-1", "Markt A")

	handler := HandleMarketList(app)

	req := httptest.NewRequest(http.MethodGet, "/markets?page=99", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp marketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", resp.Page)
	}
	if len(resp.Markets) != 1 {
		t.Errorf("expected the single market on the clamped page, got %d", len(resp.Markets))
	}
}
