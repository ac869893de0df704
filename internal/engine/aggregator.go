package engine

import (
	"runtime"
	"sync"

	"rentdash/internal/models"
)

type coverageStats struct {
	present   int
	missing   int
	estimated int
	malformed int
}

// Coverage classifies every cell of every quarter column and counts the
// outcomes per quarter. Rows are split across workers; each worker fills
// its own counters which are merged at the end.
func (t *Table) Coverage() models.CoverageResponse {
	// 1. Dimensions
	numQuarters := len(t.quarters)
	numRows := len(t.records)

	// 2. Setup Workers
	numWorkers := runtime.NumCPU()
	if numWorkers > numRows {
		numWorkers = numRows
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := numRows / numWorkers

	results := make(chan []coverageStats, numWorkers)
	var wg sync.WaitGroup

	// 3. Parallel Loop
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = numRows
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()

			partial := make([]coverageStats, numQuarters)
			for j := s; j < e; j++ {
				rec := &t.records[j]
				for q, key := range t.quarters {
					cv := ClassifyCell(rec, key)
					switch {
					case !cv.Present:
						partial[q].missing++
					case cv.Numeric == nil:
						partial[q].malformed++
						partial[q].present++
					default:
						partial[q].present++
					}
					if cv.Estimated {
						partial[q].estimated++
					}
				}
			}
			results <- partial
		}(start, end)
	}

	go func() { wg.Wait(); close(results) }()

	// 4. Merge Phase
	final := make([]coverageStats, numQuarters)
	for p := range results {
		for q := range p {
			final[q].present += p[q].present
			final[q].missing += p[q].missing
			final[q].estimated += p[q].estimated
			final[q].malformed += p[q].malformed
		}
	}

	// 5. Build Result (quarter order follows the table)
	out := models.CoverageResponse{
		Records:  numRows,
		Quarters: make([]models.QuarterCoverage, numQuarters),
	}
	for q, key := range t.quarters {
		out.Quarters[q] = models.QuarterCoverage{
			Quarter:   key,
			Present:   final[q].present,
			Missing:   final[q].missing,
			Estimated: final[q].estimated,
			Malformed: final[q].malformed,
		}
	}
	return out
}
