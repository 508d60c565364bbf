package clean

import (
	"math"
	"sort"

	"github.com/vayuview/vayuview/internal/dataset"
)

// trimQuantile is the retention threshold for outlier trimming.
const trimQuantile = 0.99

// TrimOutliers removes extreme rows column by column: for each pollutant in
// the fixed dataset.Pollutants order it computes the 99th percentile over
// the rows that survived the previous columns and keeps only rows strictly
// below it. Later thresholds therefore see an already-trimmed table; the
// column order is part of the result contract.
//
// A row whose value for the current column is missing compares false
// against the threshold and is removed. Columns with no present values are
// skipped entirely.
func TrimOutliers(t dataset.Table) dataset.Table {
	rows := t.Rows
	for _, p := range dataset.Pollutants {
		vals := make([]float64, 0, len(rows))
		for _, r := range rows {
			if v, ok := r.Value(p); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		threshold := quantile(vals, trimQuantile)

		kept := make([]dataset.Record, 0, len(rows))
		for _, r := range rows {
			if r.Values[p] < threshold {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return dataset.Table{Name: t.Name, Rows: rows}
}

// Categorize stamps each record's AQI category from its PM2.5 value.
func Categorize(t dataset.Table) dataset.Table {
	rows := make([]dataset.Record, len(t.Rows))
	for i, r := range t.Rows {
		r.Category = dataset.CategoryOf(r.Values[dataset.PM25])
		rows[i] = r
	}
	return dataset.Table{Name: t.Name, Rows: rows}
}

// quantile interpolates linearly between the two nearest ranks of a sorted
// sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
