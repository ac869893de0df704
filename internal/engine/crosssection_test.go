package engine

import (
	"reflect"
	"testing"
)

func TestBuildCrossSectionAllProvinces(t *testing.T) {
	records := sampleRecords()

	cs := BuildCrossSection(records, "Q2 2021", AllProvinces, nil)

	// first-seen order, not sorted
	wantAreas := []string{toronto, ottawaON, montreal}
	if !reflect.DeepEqual(cs.Areas, wantAreas) {
		t.Errorf("Expected areas %v, got %v", wantAreas, cs.Areas)
	}
	if !reflect.DeepEqual(cs.UnitTypes, UnitTypeCategories) {
		t.Errorf("Expected default unit types, got %v", cs.UnitTypes)
	}
	if len(cs.Records) != len(records) {
		t.Errorf("Expected %d records, got %d", len(records), len(cs.Records))
	}

	for _, ut := range cs.UnitTypes {
		if len(cs.PerType[ut]) != len(cs.Areas) {
			t.Errorf("%s: Expected %d values, got %d", ut, len(cs.Areas), len(cs.PerType[ut]))
		}
	}

	rooms := cs.PerType[room]
	// Toronto 975E, Ottawa has no Room record, Montréal ".."
	if rooms[0].Numeric == nil || *rooms[0].Numeric != 975 || !rooms[0].Estimated {
		t.Errorf("Toronto Room: Expected 975 estimated, got %+v", rooms[0])
	}
	if rooms[1].Present {
		t.Errorf("Ottawa Room: Expected missing, got %+v", rooms[1])
	}
	if rooms[2].Present {
		t.Errorf("Montréal Room: Expected missing, got %+v", rooms[2])
	}

	if !cs.Annotations.AnyMissing || !cs.Annotations.AnyEstimated {
		t.Errorf("Expected both annotations, got %+v", cs.Annotations)
	}
}

func TestBuildCrossSectionProvince(t *testing.T) {
	cs := BuildCrossSection(sampleRecords(), "Q1 2021", "Quebec", nil)

	if !reflect.DeepEqual(cs.Areas, []string{montreal}) {
		t.Fatalf("Expected only Montréal, got %v", cs.Areas)
	}
	for _, r := range cs.Records {
		if r.Province != "Quebec" {
			t.Errorf("Unexpected province %q in records", r.Province)
		}
	}

	oneBedVals := cs.PerType[oneBed]
	if oneBedVals[0].Numeric == nil || *oneBedVals[0].Numeric != 1300 {
		t.Errorf("Expected 1300, got %+v", oneBedVals[0])
	}
	// no 2-bedroom record for Montréal
	if cs.PerType[twoBed][0].Present {
		t.Errorf("Expected missing 2 bedrooms, got %+v", cs.PerType[twoBed][0])
	}
}

func TestBuildCrossSectionEmptyProvinceMeansAll(t *testing.T) {
	cs := BuildCrossSection(sampleRecords(), "Q1 2021", "", nil)
	if cs.Province != AllProvinces {
		t.Errorf("Expected province %q, got %q", AllProvinces, cs.Province)
	}
	if len(cs.Areas) != 3 {
		t.Errorf("Expected 3 areas, got %d", len(cs.Areas))
	}
}

func TestBuildCrossSectionUnknownProvince(t *testing.T) {
	cs := BuildCrossSection(sampleRecords(), "Q1 2021", "Yukon", []string{room})
	if len(cs.Areas) != 0 || len(cs.Records) != 0 {
		t.Errorf("Expected no areas, got %v", cs.Areas)
	}
	if len(cs.PerType[room]) != 0 {
		t.Errorf("Expected empty values, got %v", cs.PerType[room])
	}
	if cs.Annotations.AnyMissing || cs.Annotations.AnyEstimated {
		t.Errorf("Expected no annotations, got %+v", cs.Annotations)
	}
}

func TestBuildCrossSectionUnknownQuarter(t *testing.T) {
	cs := BuildCrossSection(sampleRecords(), "Q4 2030", AllProvinces, nil)
	for ut, values := range cs.PerType {
		for i, v := range values {
			if v.Present {
				t.Errorf("%s[%d]: Expected missing, got %+v", ut, i, v)
			}
		}
	}
}
