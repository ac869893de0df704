package engine

import (
	"regexp"
	"sort"
	"strconv"

	"rentdash/internal/models"
)

// Source column names for the dimension fields.
const (
	ColGeography = "Geography"
	ColProvince  = "Province"
	ColUnitType  = "Rental unit type"
)

var quarterPattern = regexp.MustCompile(`^Q[1-4] \d{4}$`)

// IsQuarterKey reports whether a column name is a time-series column.
func IsQuarterKey(name string) bool {
	return quarterPattern.MatchString(name)
}

// QuarterKeys returns the time-series columns of a representative record,
// in the record's column order.
func QuarterKeys(rec models.Record) []string {
	keys := make([]string, 0, len(rec.Columns))
	for _, col := range rec.Columns {
		if IsQuarterKey(col) {
			keys = append(keys, col)
		}
	}
	return keys
}

// ParseQuarter splits "Q3 2021" into (2021, 3).
func ParseQuarter(key string) (year, quarter int, ok bool) {
	if !IsQuarterKey(key) {
		return 0, 0, false
	}
	quarter = int(key[1] - '0')
	year, err := strconv.Atoi(key[3:])
	if err != nil {
		return 0, 0, false
	}
	return year, quarter, true
}

func quarterLess(a, b string) bool {
	ya, qa, _ := ParseQuarter(a)
	yb, qb, _ := ParseQuarter(b)
	if ya != yb {
		return ya < yb
	}
	return qa < qb
}

// IsChronological reports whether keys are in ascending (year, quarter) order.
func IsChronological(keys []string) bool {
	return sort.SliceIsSorted(keys, func(i, j int) bool { return quarterLess(keys[i], keys[j]) })
}

// SortChronological returns a copy of keys ordered by (year, quarter).
// Equal keys keep their discovery order.
func SortChronological(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool { return quarterLess(out[i], out[j]) })
	return out
}
