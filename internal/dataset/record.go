package dataset

import "time"

// Record is one measurement row. Pollutant values live in a fixed-size
// vector indexed by Pollutant, with NaN standing in for missing cells.
// Calendar fields are derived by the cleaning stage; Hour is -1 until (and
// unless) a timestamp with time-of-day has been parsed.
type Record struct {
	City    string
	Station string

	// RawTime holds the unparsed timestamp cell; Timestamp is set by the
	// normalizer once parsing succeeds.
	RawTime   string
	Timestamp time.Time

	Year     int
	Month    time.Month
	Hour     int
	Season   Season
	Category Category

	Values [NumPollutants]float64
}

// NewRecord returns a record with every pollutant marked missing.
func NewRecord() Record {
	r := Record{Hour: -1}
	for i := range r.Values {
		r.Values[i] = Missing()
	}
	return r
}

// Value returns the concentration for p and whether it is present.
func (r Record) Value(p Pollutant) (float64, bool) {
	v := r.Values[p]
	return v, !IsMissing(v)
}

// SetValue stores a concentration for p.
func (r *Record) SetValue(p Pollutant, v float64) {
	r.Values[p] = v
}

// Table is an immutable-by-convention set of records from one source. Each
// pipeline stage takes a Table and returns a new one; no stage mutates its
// input after handing it off.
type Table struct {
	Name string
	Rows []Record
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Len returns the row count.
func (t Table) Len() int { return len(t.Rows) }
