package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/signalworks/jlogic/internal/engine"
)

// ErrorCount returns the number of rows that failed to compile.
func ErrorCount(rows []engine.Row) int {
	n := 0
	for _, r := range rows {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Render writes the compiled rows as an aligned table, followed by a
// summary of the failed rows when there are any.
func Render(w io.Writer, junction string, rows []engine.Row) {
	fmt.Fprintf(w, "Junction %s: %d transition rows\n\n", junction, len(rows))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tFROM\tTO\tTEMPLATE\tCODE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Seq, r.From, r.To, r.Template, r.Code())
	}
	tw.Flush()

	failed := ErrorCount(rows)
	if failed == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d of %d rows failed:\n", failed, len(rows))
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "  row %d (%s -> %s): %v\n", r.Seq, r.From, r.To, r.Err)
		}
	}
}
