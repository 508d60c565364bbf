package loader

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vayuview/vayuview/internal/dataset"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFileYieldsEmptyTable(t *testing.T) {
	l := New(t.TempDir(), discard())
	tbl, err := l.Load("city_day.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tbl.Empty() {
		t.Fatalf("got %d rows, want empty table", tbl.Len())
	}
	if tbl.Name != "city_day.csv" {
		t.Fatalf("table name = %q", tbl.Name)
	}
}

func TestLoadParsesCells(t *testing.T) {
	dir := t.TempDir()
	csv := "City,Date,PM2.5,PM10,NO2\n" +
		"delhi,2019-01-01,200.5,,abc\n" +
		"Mumbai,2019-01-02,NaN,110,40\n"
	if err := os.WriteFile(filepath.Join(dir, "city_day.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tbl, err := New(dir, discard()).Load("city_day.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}

	r0 := tbl.Rows[0]
	if r0.City != "delhi" || r0.RawTime != "2019-01-01" {
		t.Fatalf("row 0 = %+v", r0)
	}
	if v, ok := r0.Value(dataset.PM25); !ok || v != 200.5 {
		t.Fatalf("row 0 PM2.5 = %v (%v)", v, ok)
	}
	// Blank and non-numeric cells stay missing.
	if _, ok := r0.Value(dataset.PM10); ok {
		t.Fatal("blank cell should be missing")
	}
	if _, ok := r0.Value(dataset.NO2); ok {
		t.Fatal("non-numeric cell should be missing")
	}

	r1 := tbl.Rows[1]
	if _, ok := r1.Value(dataset.PM25); ok {
		t.Fatal("NaN cell should be missing")
	}
	if v, ok := r1.Value(dataset.PM10); !ok || v != 110 {
		t.Fatalf("row 1 PM10 = %v (%v)", v, ok)
	}
}

func TestLoadStationColumn(t *testing.T) {
	dir := t.TempDir()
	csv := "StationId,City,Date,PM2.5\nAP001,Amaravati,2019-01-01,52\n"
	if err := os.WriteFile(filepath.Join(dir, "station_day.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tbl, err := New(dir, discard()).Load("station_day.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 1 || tbl.Rows[0].Station != "AP001" {
		t.Fatalf("station = %q", tbl.Rows[0].Station)
	}
}
