package collector

import "time"

// MonthlyUnits enumerates the fetch units covering [start, end] in monthly
// mode: the first of start's month, then successive first-of-month dates,
// one unit per 30 days in the range plus one. This is deliberately not
// calendar-exact — near month boundaries it over- or under-fetches by one
// unit. The keep-first dedup in the assembler absorbs the overlap, and the
// final window slice trims the excess.
func MonthlyUnits(start, end time.Time) []time.Time {
	days := int(end.Sub(start).Hours() / 24)
	months := days / 30

	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	units := []time.Time{cur}
	for i := 0; i < months; i++ {
		cur = cur.AddDate(0, 1, 0)
		units = append(units, cur)
	}
	return units
}

// DailyUnits enumerates every calendar date from start to end inclusive.
// Used for small incremental windows; units sharing a month resolve to the
// same page, and the duplicate rows collapse in the assembler.
func DailyUnits(start, end time.Time) []time.Time {
	var units []time.Time
	for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		units = append(units, d)
	}
	return units
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
