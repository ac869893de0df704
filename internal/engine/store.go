package engine

import (
	"fmt"

	"github.com/labstack/gommon/log"

	"rentdash/internal/models"
)

// Table is the loaded survey table plus everything derived from it once at
// load time. It is never mutated after NewTable returns, so any number of
// goroutines may query it.
type Table struct {
	records    []models.Record
	quarters   []string
	index      models.DimensionIndex
	unitTypes  []string
	duplicates []SliceKey
	source     string
}

// NewTable inspects the schema and builds the dimension index.
// An empty record set gives an empty, usable table.
func NewTable(records []models.Record, opts ...Option) (*Table, error) {
	cfg := applyOptions(opts)

	t := &Table{
		records:   records,
		unitTypes: cfg.unitTypes,
		source:    cfg.source,
	}

	// 1. Schema (first record decides for all)
	if len(records) > 0 {
		t.quarters = QuarterKeys(records[0])
	} else {
		t.quarters = []string{}
	}
	if !IsChronological(t.quarters) {
		if cfg.chronological {
			t.quarters = SortChronological(t.quarters)
		} else {
			log.Warnf("quarter columns are not in chronological order (%d columns)", len(t.quarters))
		}
	}

	// 2. Slice uniqueness
	t.duplicates = FindDuplicates(records)
	if len(t.duplicates) > 0 {
		first := t.duplicates[0]
		if cfg.strict {
			return nil, fmt.Errorf("%w: %q / %q (%d pairs)", ErrDuplicateSlice, first.Geography, first.RentalUnitType, len(t.duplicates))
		}
		log.Warnf("%d duplicate area/unit type pairs, first record wins (e.g. %q / %q)",
			len(t.duplicates), first.Geography, first.RentalUnitType)
	}

	// 3. Dictionaries
	t.index = BuildIndex(records, t.quarters)
	return t, nil
}

func (t *Table) Len() int { return len(t.records) }
func (t *Table) Records() []models.Record { return t.records }
func (t *Table) QuarterKeys() []string { return t.quarters }
func (t *Table) Index() models.DimensionIndex { return t.index }
func (t *Table) UnitTypes() []string { return t.unitTypes }
func (t *Table) Duplicates() []SliceKey { return t.duplicates }
func (t *Table) Source() string { return t.source }
func (t *Table) HasQuarter(key string) bool { return contains(t.quarters, key) }
func (t *Table) HasProvince(name string) bool { return contains(t.index.Provinces, name) }

// LatestQuarter is the last quarter key, or "" for an empty table.
func (t *Table) LatestQuarter() string {
	if len(t.quarters) == 0 {
		return ""
	}
	return t.quarters[len(t.quarters)-1]
}

// Series builds the time series for one (area, unit type) pair.
func (t *Table) Series(area, unitType string, translate Translator) models.Series {
	return BuildSeries(t.records, area, unitType, t.quarters, translate)
}

// CrossSection builds the comparison grid for one quarter and province.
func (t *Table) CrossSection(quarter, province string) models.CrossSection {
	return BuildCrossSection(t.records, quarter, province, t.unitTypes)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
