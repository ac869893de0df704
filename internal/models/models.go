package models

// Record is one row of the rental survey table.
// Columns keeps the source field order; Cells holds every non-dimension
// field that was present in the source row (a missing key means "absent").
type Record struct {
	Geography      string            `json:"geography"`
	Province       string            `json:"province"`
	RentalUnitType string            `json:"rental_unit_type"`
	Columns        []string          `json:"-"`
	Cells          map[string]string `json:"cells"`
}

// Cell returns the raw value stored under key and whether it was present.
func (r *Record) Cell(key string) (string, bool) {
	if r == nil || r.Cells == nil {
		return "", false
	}
	v, ok := r.Cells[key]
	return v, ok
}

type ClassifiedValue struct {
	Numeric   *float64 `json:"numeric"`
	Estimated bool     `json:"estimated"`
	Present   bool     `json:"present"`
}

type Point struct {
	X         string   `json:"x"`
	Y         *float64 `json:"y"`
	Label     string   `json:"label"`
	Estimated bool     `json:"estimated"`
}

type DimensionIndex struct {
	Areas     []string `json:"areas"`
	UnitTypes []string `json:"unit_types"`
	Provinces []string `json:"provinces"`
	Quarters  []string `json:"quarters"`
}

type Annotations struct {
	AnyMissing   bool `json:"any_missing"`
	AnyEstimated bool `json:"any_estimated"`
}

// Series is the time-series view for one (area, unit type) pair.
// Labels carries the raw quarter keys in the same order as Points.
type Series struct {
	Area        string      `json:"area"`
	UnitType    string      `json:"unit_type"`
	Points      []Point     `json:"points"`
	Labels      []string    `json:"labels"`
	Annotations Annotations `json:"annotations"`
}

// CrossSection is the one-quarter comparison grid.
// PerType[unitType][i] belongs to Areas[i].
type CrossSection struct {
	Quarter     string                       `json:"quarter"`
	Province    string                       `json:"province"`
	Areas       []string                     `json:"areas"`
	UnitTypes   []string                     `json:"unit_types"`
	PerType     map[string][]ClassifiedValue `json:"per_type"`
	Records     []Record                     `json:"-"`
	Annotations Annotations                  `json:"annotations"`
}

// --- API payloads ---

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type DimensionsResponse struct {
	Language  string   `json:"language"`
	Areas     []Option `json:"areas"`
	UnitTypes []Option `json:"unit_types"`
	Provinces []Option `json:"provinces"`
	Quarters  []Option `json:"quarters"`
	Latest    string   `json:"latest_quarter"`
}

type Notices struct {
	Missing   string `json:"missing,omitempty"`
	Estimated string `json:"estimated,omitempty"`
}

// SeriesResponse carries one tooltip per point, in point order.
type SeriesResponse struct {
	Language string   `json:"language"`
	Title    string   `json:"title"`
	Series   Series   `json:"series"`
	Tooltips []string `json:"tooltips"`
	Notices  Notices  `json:"notices"`
}

// CrossSectionResponse tooltips follow Data.PerType: Tooltips[unitType][i]
// belongs to Data.Areas[i].
type CrossSectionResponse struct {
	Language string              `json:"language"`
	Title    string              `json:"title"`
	Data     CrossSection        `json:"data"`
	Tooltips map[string][]string `json:"tooltips"`
	Notices  Notices             `json:"notices"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Loaded     bool   `json:"loaded"`
	Generation uint64 `json:"generation"`
	Records    int    `json:"records"`
	Source     string `json:"source,omitempty"`
}

// QuarterCoverage counts how a quarter's cells classify across all records.
type QuarterCoverage struct {
	Quarter   string `json:"quarter"`
	Present   int    `json:"present"`
	Missing   int    `json:"missing"`
	Estimated int    `json:"estimated"`
	Malformed int    `json:"malformed"`
}

type CoverageResponse struct {
	Records  int               `json:"records"`
	Quarters []QuarterCoverage `json:"quarters"`
}
