package engine

import (
	"strconv"
	"strings"

	"rentdash/internal/models"
)

// Sentinel is the source table's marker for a suppressed observation.
const Sentinel = ".."

// Classify maps a raw cell to a ClassifiedValue.
//
// Blank text and the ".." sentinel are missing. Anything else is present;
// an "E" anywhere in the text marks it estimated. The magnitude is read
// from the digits and dots left after stripping everything else, so an
// unreadable value stays present with a nil Numeric.
func Classify(raw string) models.ClassifiedValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == Sentinel {
		return models.ClassifiedValue{}
	}

	cv := models.ClassifiedValue{
		Estimated: strings.Contains(trimmed, "E"),
		Present:   true,
	}
	if v, ok := parseMagnitude(trimmed); ok {
		cv.Numeric = &v
	}
	return cv
}

// ClassifyCell classifies rec's value for key. A nil record or an absent
// key classify as missing.
func ClassifyCell(rec *models.Record, key string) models.ClassifiedValue {
	raw, ok := rec.Cell(key)
	if !ok {
		return models.ClassifiedValue{}
	}
	return Classify(raw)
}

// parseMagnitude keeps only digits and '.', then reads the longest leading
// decimal number ("1.2.3" -> 1.2).
func parseMagnitude(s string) (float64, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	digits := b.String()

	end, n, dot := 0, 0, false
	for end < len(digits) {
		if digits[end] == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			n++
		}
		end++
	}
	if n == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(digits[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
