package engine

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"rentdash/internal/models"
)

// DistinctSorted returns the distinct values of field across records,
// sorted ascending by byte order.
func DistinctSorted(records []models.Record, field func(models.Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DistinctInOrder returns the distinct values of field in first-seen order.
func DistinctInOrder(records []models.Record, field func(models.Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func geography(r models.Record) string { return r.Geography }
func province(r models.Record) string  { return r.Province }
func unitType(r models.Record) string  { return r.RentalUnitType }

// BuildIndex computes the dimension value sets. The three dictionaries are
// independent so they are built in parallel.
func BuildIndex(records []models.Record, quarterKeys []string) models.DimensionIndex {
	idx := models.DimensionIndex{
		Quarters: append([]string{}, quarterKeys...),
	}

	var g errgroup.Group
	g.Go(func() error { idx.Areas = DistinctSorted(records, geography); return nil })
	g.Go(func() error { idx.UnitTypes = DistinctSorted(records, unitType); return nil })
	g.Go(func() error { idx.Provinces = DistinctSorted(records, province); return nil })
	_ = g.Wait()

	return idx
}
