package engine

import (
	"reflect"
	"sort"
	"testing"

	"rentdash/internal/models"
)

func TestDistinctSorted(t *testing.T) {
	records := sampleRecords()
	records = append(records, record("Abbotsford - Mission, Census metropolitan area (CMA)", "British Columbia", room))

	got := DistinctSorted(records, geography)

	// exactly the distinct values, sorted, no duplicates
	seen := map[string]bool{}
	for _, r := range records {
		seen[r.Geography] = true
	}
	if len(got) != len(seen) {
		t.Fatalf("Expected %d areas, got %d (%v)", len(seen), len(got), got)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("Expected sorted output, got %v", got)
	}
	for _, a := range got {
		if !seen[a] {
			t.Errorf("Unexpected area %q", a)
		}
	}

	again := DistinctSorted(records, geography)
	if !reflect.DeepEqual(got, again) {
		t.Errorf("Expected idempotent output, got %v then %v", got, again)
	}
}

func TestDistinctSortedEmpty(t *testing.T) {
	got := DistinctSorted(nil, province)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestBuildIndex(t *testing.T) {
	idx := BuildIndex(sampleRecords(), []string{"Q1 2021", "Q2 2021"})

	want := models.DimensionIndex{
		Areas:     []string{montreal, ottawaON, toronto},
		UnitTypes: []string{oneBed, twoBed, room},
		Provinces: []string{"Ontario", "Quebec"},
		Quarters:  []string{"Q1 2021", "Q2 2021"},
	}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("Expected %+v, got %+v", want, idx)
	}
}
