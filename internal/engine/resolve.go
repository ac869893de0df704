package engine

import (
	"fmt"

	"rentdash/internal/models"
)

// AllProvinces is the province filter value meaning "no restriction".
const AllProvinces = "all"

// Predicate is an exact-match conjunction over the dimension fields.
// Empty fields are unconstrained.
type Predicate struct {
	Geography      string
	Province       string
	RentalUnitType string
}

func (p Predicate) Match(r *models.Record) bool {
	if p.Geography != "" && r.Geography != p.Geography {
		return false
	}
	if p.Province != "" && r.Province != p.Province {
		return false
	}
	if p.RentalUnitType != "" && r.RentalUnitType != p.RentalUnitType {
		return false
	}
	return true
}

// Resolve returns the first record matching p. Duplicate matches are not
// an error here: the first one wins. Use ResolveStrict to reject them.
func Resolve(records []models.Record, p Predicate) (*models.Record, bool) {
	for i := range records {
		if p.Match(&records[i]) {
			return &records[i], true
		}
	}
	return nil, false
}

// ResolveStrict is Resolve but fails with ErrDuplicateSlice when more than
// one record matches.
func ResolveStrict(records []models.Record, p Predicate) (*models.Record, error) {
	var found *models.Record
	for i := range records {
		if !p.Match(&records[i]) {
			continue
		}
		if found != nil {
			return found, fmt.Errorf("%w: %q / %q", ErrDuplicateSlice, p.Geography, p.RentalUnitType)
		}
		found = &records[i]
	}
	return found, nil
}

// FilterProvince restricts records to one province. AllProvinces (or an
// empty name) returns the input slice unchanged.
func FilterProvince(records []models.Record, province string) []models.Record {
	if province == "" || province == AllProvinces {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for i := range records {
		if records[i].Province == province {
			out = append(out, records[i])
		}
	}
	return out
}

// SliceKey identifies one (area, unit type) slice.
type SliceKey struct {
	Geography      string
	RentalUnitType string
}

// FindDuplicates lists every (area, unit type) pair that appears in more
// than one record, in first-seen order.
func FindDuplicates(records []models.Record) []SliceKey {
	seen := make(map[SliceKey]int, len(records))
	var dups []SliceKey
	for i := range records {
		k := SliceKey{records[i].Geography, records[i].RentalUnitType}
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// sliceLookup indexes records by (area, unit type), keeping the first
// record for each pair so lookups agree with Resolve.
func sliceLookup(records []models.Record) map[SliceKey]*models.Record {
	m := make(map[SliceKey]*models.Record, len(records))
	for i := range records {
		k := SliceKey{records[i].Geography, records[i].RentalUnitType}
		if _, ok := m[k]; !ok {
			m[k] = &records[i]
		}
	}
	return m
}
