package app

import (
	"fmt"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/tres"
	"github.com/HaPhanBaoMinh/snode/internal/ui/widgets"
)

// BuildRow assembles the display row of one node. alloc is the node's
// allocated-resource descriptor; nil means nothing is allocated.
func BuildRow(n domain.Node, alloc *string, jobs []domain.Job, cpusOn CPUCounter, now time.Time, maxJobsLen int) domain.Row {
	var a domain.Allocation
	if alloc != nil {
		a = tres.ParseAlloc(*alloc)
	}
	load, sev := widgets.Load(n.CPULoad, n.CPUs)
	return domain.Row{
		Name:         n.Name,
		Label:        n.Label(),
		CPU:          fmt.Sprintf("%d/%d", a.CPUs, n.CPUs),
		Load:         load,
		Mem:          fmt.Sprintf("%d/%dG", a.MemMiB/1024, n.RealMemory/1024),
		GPU:          gpuField(a.GPUs, tres.ConfiguredGPUs(n.Gres)),
		Jobs:         JobsOnNode(n.Name, jobs, cpusOn, now, maxJobsLen),
		LoadSeverity: sev,
		CPUUsed:      share(a.CPUs, n.CPUs),
		MemUsed:      share(a.MemMiB, n.RealMemory),
	}
}

func share(used, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(used) / float64(total)
}

func gpuField(alloc, configured int) string {
	if configured == tres.NoGPU {
		return "---"
	}
	return fmt.Sprintf("%d/%d", alloc, configured)
}
