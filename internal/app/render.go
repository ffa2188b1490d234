package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/ui/styles"
)

const (
	rowFormat = "%8s%10s%s%12s%10s    %s\n"
	ruleWidth = 75
)

var legend = []struct{ sym, text string }{
	{"-", "draining or drained"},
	{"#", "reserved"},
	{"*", "down"},
	{"**", "not responding"},
}

// Render writes the snapshot table: header, rule, one line per row and the
// state legend.
func Render(w io.Writer, rows []domain.Row) error {
	bw := bufio.NewWriter(w)
	head := fmt.Sprintf("%8s%10s%10s%12s%10s    %s", "NODE", "CPU", "LOAD", "MEM", "GPU", "JOBID")
	fmt.Fprintln(bw, styles.Header.Render(head))
	fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
	for _, r := range rows {
		load := styles.ForSeverity(r.LoadSeverity).Render(r.Load)
		fmt.Fprintf(bw, rowFormat, r.Label, r.CPU, load, r.Mem, r.GPU, r.Jobs)
	}
	fmt.Fprintln(bw)
	for _, l := range legend {
		fmt.Fprintln(bw, styles.Faint.Render(fmt.Sprintf("%-3s %s", l.sym, l.text)))
	}
	return bw.Flush()
}
