package engine

import "rentdash/internal/models"

// Translator rewrites a quarter key into its display label.
type Translator func(quarterKey string) string

// BuildSeries walks quarterKeys for one (area, unit type) pair.
// The record is resolved once; when none matches every point has a nil Y.
func BuildSeries(records []models.Record, area, unitType string, quarterKeys []string, translate Translator) models.Series {
	if translate == nil {
		translate = func(k string) string { return k }
	}

	rec, _ := Resolve(records, Predicate{Geography: area, RentalUnitType: unitType})

	points := make([]models.Point, len(quarterKeys))
	for i, key := range quarterKeys {
		cv := ClassifyCell(rec, key)
		points[i] = models.Point{
			X:         key,
			Y:         cv.Numeric,
			Label:     translate(key),
			Estimated: cv.Estimated,
		}
	}

	return models.Series{
		Area:        area,
		UnitType:    unitType,
		Points:      points,
		Labels:      append([]string{}, quarterKeys...),
		Annotations: SummarizePoints(points),
	}
}
