package engine

import "rentdash/internal/models"

const (
	toronto  = "Toronto, Census metropolitan area (CMA)"
	ottawaON = "Ottawa - Gatineau (Ontario part), Census metropolitan area (CMA)"
	montreal = "Montréal, Census metropolitan area (CMA)"
	oneBed   = "Apartment - 1 bedroom"
	twoBed   = "Apartment - 2 bedrooms"
	room     = "Room"
)

// record builds a row with the usual column layout. cells alternates
// quarter key and raw value.
func record(geo, prov, unit string, cells ...string) models.Record {
	r := models.Record{
		Geography:      geo,
		Province:       prov,
		RentalUnitType: unit,
		Columns:        []string{ColGeography, ColProvince, ColUnitType},
		Cells:          map[string]string{},
	}
	for i := 0; i+1 < len(cells); i += 2 {
		r.Columns = append(r.Columns, cells[i])
		r.Cells[cells[i]] = cells[i+1]
	}
	return r
}

func sampleRecords() []models.Record {
	return []models.Record{
		record(toronto, "Ontario", oneBed, "Q1 2021", "1,850", "Q2 2021", "1,900", "Q3 2021", ".."),
		record(toronto, "Ontario", room, "Q1 2021", "950", "Q2 2021", "975E", "Q3 2021", "990"),
		record(ottawaON, "Ontario", twoBed, "Q1 2021", "2,100", "Q2 2021", "", "Q3 2021", "2,150E"),
		record(montreal, "Quebec", oneBed, "Q1 2021", "1,300", "Q2 2021", "1,320", "Q3 2021", "1,350"),
		record(montreal, "Quebec", room, "Q1 2021", "700E", "Q2 2021", "..", "Q3 2021", "720"),
	}
}

func f64(v float64) *float64 { return &v }
