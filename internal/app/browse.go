package app

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/ui/styles"
	"github.com/HaPhanBaoMinh/snode/internal/ui/widgets"
)

var sortOrders = []string{"node", "cpu", "mem"}

// Browser shows one snapshot as a scrollable table. It never reloads.
type Browser struct {
	title string
	rows  []domain.Row // snapshot order
	shown []domain.Row // rows in the current sort order

	table    table.Model
	sortBy   int
	infoOpen bool

	width, height int
}

func NewBrowser(title string, rows []domain.Row) Browser {
	t := table.New()
	t.SetHeight(12)
	t.SetWidth(100)

	b := Browser{
		title:  title,
		rows:   rows,
		table:  t,
		width:  104,
		height: 20,
	}
	b.rebuildTable()
	return b
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.resize()
		b.rebuildTable()
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return b, tea.Quit
		case "esc":
			if b.infoOpen {
				b.infoOpen = false
				b.resize()
				return b, nil
			}
			return b, tea.Quit
		case "i":
			b.infoOpen = !b.infoOpen
			b.resize()
			return b, nil
		case "s":
			b.sortBy = (b.sortBy + 1) % len(sortOrders)
			b.rebuildTable()
			b.table.SetCursor(0)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b *Browser) resize() {
	headerH := lipgloss.Height(styles.Header.Render("x"))
	footerH := lipgloss.Height(styles.Footer.Render("x"))
	base := b.height - headerH - footerH - 2
	if base < 5 {
		base = 5
	}
	if b.infoOpen {
		b.table.SetHeight(int(float64(base) * 0.6))
	} else {
		b.table.SetHeight(base)
	}
	b.table.SetWidth(b.width - 4)
}

func (b *Browser) rebuildTable() {
	b.shown = append(b.shown[:0], b.rows...)
	switch sortOrders[b.sortBy] {
	case "cpu":
		sort.SliceStable(b.shown, func(i, j int) bool { return b.shown[i].CPUUsed > b.shown[j].CPUUsed })
	case "mem":
		sort.SliceStable(b.shown, func(i, j int) bool { return b.shown[i].MemUsed > b.shown[j].MemUsed })
	}

	w := colWidths(b.table.Width())
	b.table.SetColumns([]table.Column{
		{Title: "NODE", Width: w.node},
		{Title: "CPU", Width: w.cpu},
		{Title: "", Width: w.bar},
		{Title: "LOAD", Width: w.load},
		{Title: "MEM", Width: w.mem},
		{Title: "", Width: w.bar},
		{Title: "GPU", Width: w.gpu},
		{Title: "JOBID", Width: w.jobs},
	})
	rows := make([]table.Row, 0, len(b.shown))
	for _, r := range b.shown {
		rows = append(rows, table.Row{
			r.Label,
			r.CPU,
			widgets.Bar(r.CPUUsed, w.bar-1),
			r.Load,
			r.Mem,
			widgets.Bar(r.MemUsed, w.bar-1),
			r.GPU,
			r.Jobs,
		})
	}
	b.table.SetRows(rows)
	b.table.Focus()
}

// Selected returns the row under the cursor.
func (b Browser) Selected() (domain.Row, bool) {
	i := b.table.Cursor()
	if i < 0 || i >= len(b.shown) {
		return domain.Row{}, false
	}
	return b.shown[i], true
}

func (b Browser) View() string {
	head := styles.Header.Render(fmt.Sprintf("snode │ %s  nodes: %d  sort: %s", b.title, len(b.rows), sortOrders[b.sortBy]))
	body := lipgloss.NewStyle().Padding(0, 1).Render(b.table.View())

	info := ""
	if b.infoOpen {
		info = styles.Box.Width(b.width - 2).Render(b.renderInfo())
	}
	footer := styles.Footer.Render("↑/↓ move • [i] info • [s] sort • [q] quit")
	return lipgloss.JoinVertical(lipgloss.Left, head, body, info, footer)
}

func (b Browser) renderInfo() string {
	r, ok := b.Selected()
	if !ok {
		return "No nodes"
	}
	jobs := r.Jobs
	if jobs == "" {
		jobs = "none"
	}
	return fmt.Sprintf("Node: %s\nCPU  %-10s %s\nMEM  %-10s %s\nGPU  %s\nLoad %s\nJobs: %s",
		r.Label,
		r.CPU, widgets.Bar(r.CPUUsed, 20),
		r.Mem, widgets.Bar(r.MemUsed, 20),
		r.GPU,
		styles.ForSeverity(r.LoadSeverity).Render(r.Load),
		jobs,
	)
}
