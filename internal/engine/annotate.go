package engine

import "rentdash/internal/models"

// Summarize reports whether any value is missing or estimated.
func Summarize(values []models.ClassifiedValue) models.Annotations {
	var a models.Annotations
	for _, v := range values {
		if !v.Present {
			a.AnyMissing = true
		}
		if v.Estimated {
			a.AnyEstimated = true
		}
	}
	return a
}

// SummarizePoints is Summarize for built points, where a nil Y is missing.
func SummarizePoints(points []models.Point) models.Annotations {
	var a models.Annotations
	for _, p := range points {
		if p.Y == nil {
			a.AnyMissing = true
		}
		if p.Estimated {
			a.AnyEstimated = true
		}
	}
	return a
}

func SummarizeGrid(grid map[string][]models.ClassifiedValue) models.Annotations {
	var a models.Annotations
	for _, values := range grid {
		s := Summarize(values)
		a.AnyMissing = a.AnyMissing || s.AnyMissing
		a.AnyEstimated = a.AnyEstimated || s.AnyEstimated
	}
	return a
}
