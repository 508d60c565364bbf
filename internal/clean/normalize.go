// Package clean implements the normalization and cleaning stages of the
// pipeline. Every function takes a table and returns a new one; inputs are
// never mutated.
package clean

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vayuview/vayuview/internal/dataset"
)

// timeLayouts are tried in order when parsing the timestamp cell.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize trims and title-cases the categorical text fields so that
// grouping keys compare consistently ("delhi ", "DELHI" -> "Delhi").
func Normalize(t dataset.Table) dataset.Table {
	caser := cases.Title(language.English)
	rows := make([]dataset.Record, len(t.Rows))
	for i, r := range t.Rows {
		r.City = caser.String(strings.TrimSpace(r.City))
		r.Station = caser.String(strings.TrimSpace(r.Station))
		rows[i] = r
	}
	return dataset.Table{Name: t.Name, Rows: rows}
}

// ParseTimes parses each record's raw timestamp and derives the calendar
// attributes (year, month, season, and hour when the layout carries one).
// With drop set, rows whose timestamp is absent or unparseable are removed;
// otherwise they are kept with Hour left at -1 so hourly aggregation can
// skip them. It returns the new table and the number of rows that failed
// to parse.
func ParseTimes(t dataset.Table, drop bool) (dataset.Table, int) {
	rows := make([]dataset.Record, 0, len(t.Rows))
	bad := 0
	for _, r := range t.Rows {
		ts, hasClock, ok := parseTimestamp(r.RawTime)
		if !ok {
			bad++
			if drop {
				continue
			}
			rows = append(rows, r)
			continue
		}
		r.Timestamp = ts
		r.Year = ts.Year()
		r.Month = ts.Month()
		r.Season = dataset.SeasonOf(ts.Month())
		if hasClock {
			r.Hour = ts.Hour()
		}
		rows = append(rows, r)
	}
	return dataset.Table{Name: t.Name, Rows: rows}, bad
}

func parseTimestamp(s string) (ts time.Time, hasClock, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, strings.Contains(layout, ":"), true
		}
	}
	return time.Time{}, false, false
}
