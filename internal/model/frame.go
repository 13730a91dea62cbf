package model

import "time"

// RawRow is one table row as scraped from a historical page. The numeric
// fields are still text: PSX renders them with thousands separators, and a
// truncated trailing row may leave some of them empty.
type RawRow struct {
	Date   time.Time
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// MonthFrame holds the rows parsed from a single (symbol, unit) page.
// Dates within a frame are not contiguous: weekends and exchange holidays
// leave gaps.
type MonthFrame struct {
	Symbol string
	Unit   time.Time // the fetch unit the page was requested for
	Rows   []RawRow
}

// Empty reports whether the frame carries no rows.
func (f MonthFrame) Empty() bool { return len(f.Rows) == 0 }
