package movers

import (
	"fmt"
	"strings"
	"time"
)

// FormatReport renders the snapshot as a plain-text report for logs and the
// CLI, top n per side.
func FormatReport(gainers, losers []Mover, n int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Market movers | %s\n\n", time.Now().Format("2006-01-02")))

	b.WriteString("Top gainers:\n")
	if len(gainers) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, m := range Top(gainers, n) {
		b.WriteString(fmt.Sprintf("  %-8s %10.2f  %+6.2f%%\n", m.Symbol, m.LastClose, m.ChangePct))
	}

	b.WriteString("\nTop losers:\n")
	if len(losers) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, m := range Top(losers, n) {
		b.WriteString(fmt.Sprintf("  %-8s %10.2f  %+6.2f%%\n", m.Symbol, m.LastClose, m.ChangePct))
	}

	return b.String()
}
