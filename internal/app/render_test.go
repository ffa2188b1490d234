package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

func TestRender(t *testing.T) {
	defer lipgloss.SetColorProfile(lipgloss.ColorProfile())
	lipgloss.SetColorProfile(termenv.Ascii)

	rows := []domain.Row{
		{Label: "c1", CPU: "4/8", Load: "      0.50", Mem: "4/32G", GPU: "---", Jobs: "[101 alice 10:00] "},
		{Label: "**c2", CPU: "0/8", Load: "       N/A", Mem: "0/32G", GPU: "0/2", Jobs: ""},
	}
	var buf bytes.Buffer
	if err := Render(&buf, rows); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"    NODE       CPU      LOAD         MEM       GPU    JOBID",
		strings.Repeat("=", 75),
		"      c1       4/8      0.50       4/32G       ---    [101 alice 10:00] ",
		"    **c2       0/8       N/A       0/32G       0/2    ",
		"",
		"-   draining or drained",
		"#   reserved",
		"*   down",
		"**  not responding",
		"",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
