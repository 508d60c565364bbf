package clean

import "github.com/vayuview/vayuview/internal/dataset"

// Impute fills each missing pollutant value with that column's arithmetic
// mean over the non-missing values of the whole table (not per city or
// season). A column with no values at all is left untouched.
func Impute(t dataset.Table) dataset.Table {
	means := ColumnMeans(t)
	rows := make([]dataset.Record, len(t.Rows))
	for i, r := range t.Rows {
		for _, p := range dataset.Pollutants {
			if _, ok := r.Value(p); ok {
				continue
			}
			if m, ok := means[p]; ok {
				r.SetValue(p, m)
			}
		}
		rows[i] = r
	}
	return dataset.Table{Name: t.Name, Rows: rows}
}

// ColumnMeans computes the per-pollutant mean over non-missing values.
// Pollutants with no values are absent from the result.
func ColumnMeans(t dataset.Table) map[dataset.Pollutant]float64 {
	means := make(map[dataset.Pollutant]float64, dataset.NumPollutants)
	for _, p := range dataset.Pollutants {
		sum, n := 0.0, 0
		for _, r := range t.Rows {
			if v, ok := r.Value(p); ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			means[p] = sum / float64(n)
		}
	}
	return means
}
