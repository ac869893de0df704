package engine

import "rentdash/internal/models"

// UnitTypeCategories is the fixed set of unit types shown in the
// cross-section comparison. It is a display contract, not derived from data.
var UnitTypeCategories = []string{
	"Apartment - 1 bedroom",
	"Apartment - 2 bedrooms",
	"Room",
}

// BuildCrossSection classifies the quarter's cell for every area in the
// province (first-seen order) and every unit type in unitTypes. A nil
// unitTypes uses UnitTypeCategories.
func BuildCrossSection(records []models.Record, quarter, province string, unitTypes []string) models.CrossSection {
	if unitTypes == nil {
		unitTypes = UnitTypeCategories
	}
	if province == "" {
		province = AllProvinces
	}

	filtered := FilterProvince(records, province)
	areas := DistinctInOrder(filtered, geography)
	lookup := sliceLookup(filtered)

	perType := make(map[string][]models.ClassifiedValue, len(unitTypes))
	for _, ut := range unitTypes {
		values := make([]models.ClassifiedValue, len(areas))
		for i, area := range areas {
			values[i] = ClassifyCell(lookup[SliceKey{area, ut}], quarter)
		}
		perType[ut] = values
	}

	return models.CrossSection{
		Quarter:     quarter,
		Province:    province,
		Areas:       areas,
		UnitTypes:   append([]string{}, unitTypes...),
		PerType:     perType,
		Records:     filtered,
		Annotations: SummarizeGrid(perType),
	}
}
