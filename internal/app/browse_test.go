package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browseRows() []domain.Row {
	return []domain.Row{
		{Name: "c01", Label: "c01", CPU: "2/16", Load: "      0.10", Mem: "4/64G", GPU: "---", CPUUsed: 0.125, MemUsed: 0.0625},
		{Name: "c02", Label: "-c02", CPU: "16/16", Load: "     18.00", Mem: "8/64G", GPU: "---", Jobs: "[41250 alice 1:00:00] ",
			CPUUsed: 1, MemUsed: 0.125, LoadSeverity: domain.SeverityCaution},
		{Name: "g01", Label: "g01", CPU: "8/32", Load: "       N/A", Mem: "200/250G", GPU: "2/4", CPUUsed: 0.25, MemUsed: 0.8},
	}
}

func send(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestBrowserSelection(t *testing.T) {
	m, _ := send(NewBrowser("scontrol", browseRows()), tea.WindowSizeMsg{Width: 140, Height: 30}, key("down"))
	r, ok := m.(Browser).Selected()
	if !ok || r.Name != "c02" {
		t.Fatalf("selected = %+v, %v; want c02", r, ok)
	}
}

func TestBrowserSort(t *testing.T) {
	m, _ := send(NewBrowser("mock", browseRows()), key("s"))
	if r, _ := m.(Browser).Selected(); r.Name != "c02" {
		t.Fatalf("top row by cpu = %s, want c02", r.Name)
	}
	m, _ = send(m, key("s"))
	if r, _ := m.(Browser).Selected(); r.Name != "g01" {
		t.Fatalf("top row by mem = %s, want g01", r.Name)
	}
	m, _ = send(m, key("s"))
	if r, _ := m.(Browser).Selected(); r.Name != "c01" {
		t.Fatalf("top row in node order = %s, want c01", r.Name)
	}
}

func TestBrowserInfo(t *testing.T) {
	defer lipgloss.SetColorProfile(lipgloss.ColorProfile())
	lipgloss.SetColorProfile(termenv.Ascii)

	m, _ := send(NewBrowser("mock", browseRows()), tea.WindowSizeMsg{Width: 140, Height: 30}, key("down"), key("i"))
	view := m.View()
	for _, want := range []string{"Node: -c02", "[41250 alice 1:00:00]", "sort: node"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	m, cmd := send(m, key("esc"))
	if cmd != nil {
		t.Fatal("esc with info open should only close the box")
	}
	if strings.Contains(m.View(), "Node: -c02") {
		t.Fatal("info box still shown after esc")
	}
}

func TestBrowserQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		_, cmd := send(NewBrowser("mock", browseRows()), key(k))
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command does not quit", k)
		}
	}
}

func TestColWidths(t *testing.T) {
	c := colWidths(80)
	if c.bar < 6 || c.jobs < 18 {
		t.Fatalf("narrow widths = %+v", c)
	}
	c = colWidths(200)
	if c.bar != 20 {
		t.Fatalf("bar width = %d, want 20", c.bar)
	}
}
