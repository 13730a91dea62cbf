package collector

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"StockGenie/internal/model"
)

// timeLayout matches the page's "Mar 15, 2024" date cells.
const timeLayout = "Jan 02, 2006"

// headers is the fixed column order of the historical table.
var headers = []string{"TIME", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME"}

// ErrNoTable means the page carried no table rows at all — typically an
// empty response for a month before the symbol listed. The aggregator
// treats it like any other failed unit.
var ErrNoTable = errors.New("no table rows in page")

// ParseMonth extracts the daily rows from one page's markup. Cells are
// taken in header order; a row with fewer cells than headers keeps what it
// has and drops the missing trailing fields. Rows whose date cell does not
// parse are skipped.
func ParseMonth(symbol string, unit time.Time, markup string) (model.MonthFrame, error) {
	frame := model.MonthFrame{Symbol: symbol, Unit: unit}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return frame, err
	}

	rows := doc.Find("tr")
	if rows.Length() == 0 {
		return frame, ErrNoTable
	}

	rows.Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return // header row
		}

		var raw model.RawRow
		n := tds.Length()
		if n > len(headers) {
			n = len(headers)
		}
		for i := 0; i < n; i++ {
			text := strings.TrimSpace(tds.Eq(i).Text())
			switch headers[i] {
			case "TIME":
				d, err := time.Parse(timeLayout, text)
				if err != nil {
					return
				}
				raw.Date = d
			case "OPEN":
				raw.Open = text
			case "HIGH":
				raw.High = text
			case "LOW":
				raw.Low = text
			case "CLOSE":
				raw.Close = text
			case "VOLUME":
				raw.Volume = text
			}
		}
		if raw.Date.IsZero() {
			return
		}
		frame.Rows = append(frame.Rows, raw)
	})

	return frame, nil
}
