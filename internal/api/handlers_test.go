package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"rentdash/internal/engine"
	"rentdash/internal/locale"
	"rentdash/internal/models"
)

func testRecords() []models.Record {
	cols := []string{"Geography", "Province", "Rental unit type", "Q1 2021", "Q2 2021"}
	mk := func(geo, prov, unit, q1, q2 string) models.Record {
		return models.Record{
			Geography: geo, Province: prov, RentalUnitType: unit,
			Columns: cols,
			Cells:   map[string]string{"Q1 2021": q1, "Q2 2021": q2},
		}
	}
	return []models.Record{
		mk("Toronto, Census metropolitan area (CMA)", "Ontario", "Room", "950", "975E"),
		mk("Toronto, Census metropolitan area (CMA)", "Ontario", "Apartment - 1 bedroom", "1,850", ".."),
		mk("Montréal, Census metropolitan area (CMA)", "Quebec", "Room", "700", "720"),
	}
}

func newServer(t *testing.T, loaded bool) (*echo.Echo, *Store) {
	t.Helper()
	store := NewStore(func(ctx context.Context) (*engine.Table, error) { return engine.NewTable(testRecords()) })
	if loaded {
		table, err := engine.NewTable(testRecords(), engine.WithSource("test"))
		if err != nil {
			t.Fatal(err)
		}
		store.SetData(table)
	}

	e := echo.New()
	e.JSONSerializer = JSONSerializer{}
	NewHandler(store, locale.NewNegotiator("fr")).RegisterRoutes(e)
	return e, store
}

func get(e *echo.Echo, path string, query url.Values) *httptest.ResponseRecorder {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNotLoaded(t *testing.T) {
	e, _ := newServer(t, false)

	for _, path := range []string{"/api/dimensions", "/api/series", "/api/compare", "/api/coverage"} {
		if rec := get(e, path, nil); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: Expected 503, got %d", path, rec.Code)
		}
	}

	rec := get(e, "/api/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health: Expected 503, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e, _ := newServer(t, true)

	rec := get(e, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Loaded || resp.Records != 3 || resp.Source != "test" {
		t.Errorf("Unexpected health %+v", resp)
	}
}

func TestDimensions(t *testing.T) {
	e, _ := newServer(t, true)

	rec := get(e, "/api/dimensions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.DimensionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Language != "fr" {
		t.Errorf("Expected default language fr, got %q", resp.Language)
	}
	if len(resp.Provinces) != 3 || resp.Provinces[0].Value != engine.AllProvinces || resp.Provinces[0].Label != "Toutes les provinces" {
		t.Errorf("Unexpected provinces %+v", resp.Provinces)
	}
	if len(resp.Quarters) != 2 || resp.Quarters[1].Value != "Q2 2021" || resp.Quarters[1].Label != "T2 2021" {
		t.Errorf("Unexpected quarters %+v", resp.Quarters)
	}
	if resp.Latest != "Q2 2021" {
		t.Errorf("Expected latest Q2 2021, got %q", resp.Latest)
	}
	if len(resp.Areas) != 2 || resp.Areas[0].Value != "Montréal, Census metropolitan area (CMA)" {
		t.Errorf("Expected sorted areas, got %+v", resp.Areas)
	}
}

func TestSeries(t *testing.T) {
	e, _ := newServer(t, true)

	q := url.Values{}
	q.Set("area", "Toronto, Census metropolitan area (CMA)")
	q.Set("type", "Room")
	q.Set("lang", "en")
	rec := get(e, "/api/series", q)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.SeriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	pts := resp.Series.Points
	if len(pts) != 2 || pts[0].Y == nil || *pts[0].Y != 950 || !pts[1].Estimated {
		t.Errorf("Unexpected points %+v", pts)
	}
	if resp.Notices.Estimated == "" || resp.Notices.Missing != "" {
		t.Errorf("Unexpected notices %+v", resp.Notices)
	}
	if resp.Language != "en" || pts[1].Label != "Q2 2021" {
		t.Errorf("Expected English labels, got %q / %q", resp.Language, pts[1].Label)
	}
	if len(resp.Tooltips) != 2 || resp.Tooltips[1] != "Q2 2021: $975 (estimated)" {
		t.Errorf("Unexpected tooltips %q", resp.Tooltips)
	}
}

func TestSeriesMissingParams(t *testing.T) {
	e, _ := newServer(t, true)

	q := url.Values{}
	q.Set("area", "Toronto, Census metropolitan area (CMA)")
	if rec := get(e, "/api/series", q); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if rec := get(e, "/api/series.png", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCompareDefaults(t *testing.T) {
	e, _ := newServer(t, true)

	rec := get(e, "/api/compare", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.CrossSectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Quarter != "Q2 2021" || resp.Data.Province != engine.AllProvinces {
		t.Errorf("Expected latest quarter and all provinces, got %q / %q", resp.Data.Quarter, resp.Data.Province)
	}
	if len(resp.Data.Areas) != 2 {
		t.Errorf("Expected 2 areas, got %v", resp.Data.Areas)
	}
	if !resp.Data.Annotations.AnyMissing || !resp.Data.Annotations.AnyEstimated {
		t.Errorf("Expected both annotations, got %+v", resp.Data.Annotations)
	}
	if !strings.Contains(resp.Notices.Estimated, "estimées") {
		t.Errorf("Expected French notice, got %q", resp.Notices.Estimated)
	}
	rooms := resp.Tooltips["Room"]
	if len(rooms) != 2 || rooms[0] != "720 $" || rooms[1] != "975 $ (estimé)" {
		t.Errorf("Unexpected Room tooltips %q", rooms)
	}
}

func TestCompareProvince(t *testing.T) {
	e, _ := newServer(t, true)

	q := url.Values{}
	q.Set("quarter", "Q1 2021")
	q.Set("province", "Quebec")
	rec := get(e, "/api/compare", q)
	var resp models.CrossSectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Areas) != 1 || resp.Data.Areas[0] != "Montréal, Census metropolitan area (CMA)" {
		t.Errorf("Expected only Montréal, got %v", resp.Data.Areas)
	}
}

func TestCompareUnknownSelection(t *testing.T) {
	e, _ := newServer(t, true)

	cases := map[string]string{
		"quarter":  "Q4 2030",
		"province": "Yukon",
	}
	for param, value := range cases {
		q := url.Values{}
		q.Set(param, value)
		for _, path := range []string{"/api/compare", "/api/compare.png"} {
			if rec := get(e, path, q); rec.Code != http.StatusBadRequest {
				t.Errorf("%s %s=%s: Expected 400, got %d", path, param, value, rec.Code)
			}
		}
	}

	q := url.Values{}
	q.Set("province", engine.AllProvinces)
	if rec := get(e, "/api/compare", q); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for all provinces, got %d", rec.Code)
	}
}

func TestBinaryEndpoints(t *testing.T) {
	e, _ := newServer(t, true)

	q := url.Values{}
	q.Set("area", "Toronto, Census metropolitan area (CMA)")
	q.Set("type", "Room")

	cases := []struct {
		path  string
		query url.Values
		mime  string
		magic []byte
	}{
		{"/api/series.png", q, mimePNG, []byte("\x89PNG")},
		{"/api/series.arrow", q, mimeArrow, nil},
		{"/api/series.xlsx", q, mimeXLSX, []byte("PK")},
		{"/api/compare.png", nil, mimePNG, []byte("\x89PNG")},
		{"/api/compare.arrow", nil, mimeArrow, nil},
		{"/api/compare.xlsx", nil, mimeXLSX, []byte("PK")},
	}
	for _, tc := range cases {
		rec := get(e, tc.path, tc.query)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: Expected 200, got %d", tc.path, rec.Code)
			continue
		}
		if ct := rec.Header().Get(echo.HeaderContentType); ct != tc.mime {
			t.Errorf("%s: Expected %s, got %s", tc.path, tc.mime, ct)
		}
		if rec.Body.Len() == 0 {
			t.Errorf("%s: Expected a body", tc.path)
		}
		if tc.magic != nil && !bytes.HasPrefix(rec.Body.Bytes(), tc.magic) {
			t.Errorf("%s: Unexpected leading bytes", tc.path)
		}
	}
}

func TestCoverageEndpoint(t *testing.T) {
	e, _ := newServer(t, true)

	rec := get(e, "/api/coverage", nil)
	var resp models.CoverageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Records != 3 || len(resp.Quarters) != 2 || resp.Quarters[1].Missing != 1 {
		t.Errorf("Unexpected coverage %+v", resp)
	}
}

func TestReload(t *testing.T) {
	e, store := newServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if _, gen, err := store.Table(); err != nil || gen != 1 {
		t.Errorf("Expected generation 1 after reload, got %d (%v)", gen, err)
	}
	if rec := get(e, "/api/dimensions", nil); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 after reload, got %d", rec.Code)
	}
}
