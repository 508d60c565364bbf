package clean

import (
	"math"
	"testing"
	"time"

	"github.com/vayuview/vayuview/internal/dataset"
)

func rec(city, rawTime string, pm25 float64) dataset.Record {
	r := dataset.NewRecord()
	r.City = city
	r.RawTime = rawTime
	if !math.IsNaN(pm25) {
		r.SetValue(dataset.PM25, pm25)
	}
	return r
}

func table(rows ...dataset.Record) dataset.Table {
	return dataset.Table{Name: "test", Rows: rows}
}

func TestNormalize(t *testing.T) {
	in := table(
		rec("  delhi ", "", math.NaN()),
		rec("MUMBAI", "", math.NaN()),
		rec("new delhi", "", math.NaN()),
	)
	out := Normalize(in)
	want := []string{"Delhi", "Mumbai", "New Delhi"}
	for i, w := range want {
		if out.Rows[i].City != w {
			t.Fatalf("row %d city = %q, want %q", i, out.Rows[i].City, w)
		}
	}
	// The input table is not mutated.
	if in.Rows[0].City != "  delhi " {
		t.Fatalf("Normalize mutated its input: %q", in.Rows[0].City)
	}
}

func TestParseTimesDerivesCalendar(t *testing.T) {
	in := table(rec("Delhi", "2020-01-15", 10))
	out, bad := ParseTimes(in, true)
	if bad != 0 || out.Len() != 1 {
		t.Fatalf("ParseTimes dropped valid row: bad=%d len=%d", bad, out.Len())
	}
	r := out.Rows[0]
	if r.Year != 2020 || r.Month != time.January || r.Season != dataset.Winter {
		t.Fatalf("calendar fields = %d/%s/%s", r.Year, r.Month, r.Season)
	}
	// A date-only layout carries no time of day.
	if r.Hour != -1 {
		t.Fatalf("Hour = %d for date-only timestamp, want -1", r.Hour)
	}
}

func TestParseTimesHourLayout(t *testing.T) {
	in := table(rec("Delhi", "2020-06-01 14:00:00", 10))
	out, _ := ParseTimes(in, false)
	if out.Rows[0].Hour != 14 {
		t.Fatalf("Hour = %d, want 14", out.Rows[0].Hour)
	}
	if out.Rows[0].Season != dataset.Monsoon {
		t.Fatalf("Season = %s, want Monsoon", out.Rows[0].Season)
	}
}

func TestParseTimesDropsBadRows(t *testing.T) {
	in := table(
		rec("Delhi", "2020-01-01", 1),
		rec("Delhi", "not-a-date", 2),
		rec("Delhi", "", 3),
	)
	out, bad := ParseTimes(in, true)
	if bad != 2 || out.Len() != 1 {
		t.Fatalf("drop: bad=%d len=%d, want 2/1", bad, out.Len())
	}

	kept, bad := ParseTimes(in, false)
	if bad != 2 || kept.Len() != 3 {
		t.Fatalf("keep: bad=%d len=%d, want 2/3", bad, kept.Len())
	}
	if kept.Rows[1].Hour != -1 {
		t.Fatalf("unparseable row Hour = %d, want -1", kept.Rows[1].Hour)
	}
}

func TestImputeFillsColumnMean(t *testing.T) {
	in := table(
		rec("Delhi", "", 10),
		rec("Delhi", "", math.NaN()),
		rec("Delhi", "", 400),
	)
	out := Impute(in)
	v, ok := out.Rows[1].Value(dataset.PM25)
	if !ok || v != 205 {
		t.Fatalf("imputed value = %v, %v, want 205", v, ok)
	}
	// No missing values remain in columns that have data.
	for i, r := range out.Rows {
		if _, ok := r.Value(dataset.PM25); !ok {
			t.Fatalf("row %d still missing PM2.5 after impute", i)
		}
	}
	// A column with no values at all stays missing.
	if _, ok := out.Rows[0].Value(dataset.Benzene); ok {
		t.Fatal("empty column was imputed")
	}
}

func TestTrimOutliersKeepsAtMostOnePercent(t *testing.T) {
	rows := make([]dataset.Record, 0, 200)
	for i := 1; i <= 200; i++ {
		rows = append(rows, rec("Delhi", "", float64(i)))
	}
	out := TrimOutliers(table(rows...))
	if out.Len() != 198 {
		t.Fatalf("trimmed table has %d rows, want 198", out.Len())
	}
	removed := 200 - out.Len()
	if float64(removed) > math.Ceil(0.01*200) {
		t.Fatalf("trim removed %d rows, more than 1%%", removed)
	}
	// Retention is strictly below the threshold: the maximum survivor must
	// be under the 99th percentile of the original column.
	for _, r := range out.Rows {
		if v, _ := r.Value(dataset.PM25); v >= 198.01 {
			t.Fatalf("row with value %v survived trimming", v)
		}
	}
}

func TestTrimOutliersSequentialOrder(t *testing.T) {
	// The PM2.5 pass removes the row carrying the extreme PM10 value, so
	// the PM10 threshold is computed on the already-trimmed table.
	rows := make([]dataset.Record, 0, 101)
	for i := 0; i < 100; i++ {
		r := rec("Delhi", "", float64(i))
		r.SetValue(dataset.PM10, float64(i))
		rows = append(rows, r)
	}
	spike := rec("Delhi", "", 10000)
	spike.SetValue(dataset.PM10, 10000)
	rows = append(rows, spike)

	out := TrimOutliers(table(rows...))
	for _, r := range out.Rows {
		if v, _ := r.Value(dataset.PM10); v == 10000 {
			t.Fatal("spike row survived the PM2.5 pass")
		}
	}
}

func TestCategorize(t *testing.T) {
	in := table(rec("Delhi", "", 10), rec("Delhi", "", 205), rec("Delhi", "", 400))
	out := Categorize(in)
	want := []dataset.Category{dataset.Good, dataset.VeryPoor, dataset.Severe}
	for i, w := range want {
		if out.Rows[i].Category != w {
			t.Fatalf("row %d category = %s, want %s", i, out.Rows[i].Category, w)
		}
	}
}

// TestCleaningScenario walks a 3-row table through the stages in pipeline
// order: normalize, parse, impute, then categorize. Trimming runs after
// imputation and removes the extreme row.
func TestCleaningScenario(t *testing.T) {
	in := table(
		rec("Delhi ", "2020-01-01", 10),
		rec("Delhi ", "2020-01-02", math.NaN()),
		rec("Delhi ", "2020-01-03", 400),
	)

	norm := Normalize(in)
	for i, r := range norm.Rows {
		if r.City != "Delhi" {
			t.Fatalf("row %d city = %q, want Delhi", i, r.City)
		}
	}

	parsed, bad := ParseTimes(norm, true)
	if bad != 0 {
		t.Fatalf("dropped %d valid rows", bad)
	}
	for i, r := range parsed.Rows {
		if r.Season != dataset.Winter {
			t.Fatalf("row %d season = %s, want Winter", i, r.Season)
		}
	}

	imputed := Impute(parsed)
	if v, _ := imputed.Rows[1].Value(dataset.PM25); v != 205 {
		t.Fatalf("imputed PM2.5 = %v, want mean(10,400)=205", v)
	}

	categorized := Categorize(imputed)
	want := []dataset.Category{dataset.Good, dataset.VeryPoor, dataset.Severe}
	for i, w := range want {
		if categorized.Rows[i].Category != w {
			t.Fatalf("row %d category = %s, want %s", i, categorized.Rows[i].Category, w)
		}
	}

	// With only three rows the 99th percentile sits below the maximum, so
	// the sequential trim removes the 400 row.
	trimmed := TrimOutliers(imputed)
	if trimmed.Len() != 2 {
		t.Fatalf("trimmed table has %d rows, want 2", trimmed.Len())
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{10, 205, 400}
	got := quantile(sorted, 0.99)
	want := 205*0.02 + 400*0.98
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("quantile(0.99) = %v, want %v", got, want)
	}
	if quantile(sorted, 0) != 10 || quantile(sorted, 1) != 400 {
		t.Fatal("quantile endpoints wrong")
	}
	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Fatal("quantile of empty sample should be NaN")
	}
}
