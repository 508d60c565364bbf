package dataset

import "time"

// Season is a four-valued calendar attribute derived from the month.
type Season int

const (
	Winter Season = iota
	Summer
	Monsoon
	Autumn
)

// Seasons lists every season in display order.
var Seasons = [...]Season{Winter, Summer, Monsoon, Autumn}

var seasonNames = [...]string{"Winter", "Summer", "Monsoon", "Autumn"}

func (s Season) String() string {
	if s < 0 || int(s) >= len(seasonNames) {
		return "unknown"
	}
	return seasonNames[s]
}

// SeasonOf maps a month to its season: Dec-Feb Winter, Mar-May Summer,
// Jun-Sep Monsoon, Oct-Nov Autumn.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Summer
	case time.June, time.July, time.August, time.September:
		return Monsoon
	default:
		return Autumn
	}
}
