package app

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

func str(s string) *string { return &s }

func TestBuildRowEndToEnd(t *testing.T) {
	node := domain.Node{Name: "c1", State: domain.NodeMixed, CPUs: 8, RealMemory: 16384, CPULoad: 50}
	jobs := []domain.Job{
		{ID: 101, User: "alice", State: domain.JobRunning, StartTime: now.Add(-50 * time.Minute), TimeLimit: 60,
			NodeCPUs: map[string]int{"c1": 2}},
		{ID: 102, User: "bob", State: domain.JobPending, TimeLimit: 60},
	}
	got := BuildRow(node, str("cpu=4,mem=4096M"), jobs, byMap, now, 0)
	want := domain.Row{
		Name:         "c1",
		Label:        "c1",
		CPU:          "4/8",
		Load:         "      0.50",
		Mem:          "4/16G",
		GPU:          "---",
		Jobs:         "[101 alice 10:00] ",
		LoadSeverity: domain.SeverityNone,
		CPUUsed:      0.5,
		MemUsed:      0.25,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildRow mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRowNoAllocation(t *testing.T) {
	node := domain.Node{Name: "g1", State: domain.NodeIdle | domain.NodeDrain, CPUs: 16, RealMemory: 65536, CPULoad: 1600, Gres: str("gpu:4")}
	got := BuildRow(node, nil, nil, byMap, now, 0)
	want := domain.Row{
		Name:         "g1",
		Label:        "-g1",
		CPU:          "0/16",
		Load:         "     16.00",
		Mem:          "0/64G",
		GPU:          "0/4",
		Jobs:         "",
		LoadSeverity: domain.SeverityCaution,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildRow mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRowGPUAndOverload(t *testing.T) {
	node := domain.Node{Name: "g2", State: domain.NodeDown | domain.NodeNoRespond | domain.NodeDrain, CPUs: 4, RealMemory: 8192, CPULoad: 900, Gres: str("gres:gpu=0")}
	got := BuildRow(node, str("gres/gpu=0,cpu=4,mem=7.5G"), nil, byMap, now, 0)
	if got.Label != "**g2" {
		t.Errorf("Label = %q, want **g2", got.Label)
	}
	if got.GPU != "0/0" {
		t.Errorf("GPU = %q, want 0/0", got.GPU)
	}
	if got.Mem != "7/8G" {
		t.Errorf("Mem = %q, want 7/8G", got.Mem)
	}
	if got.Load != "   9.00(!)" || got.LoadSeverity != domain.SeverityOverload {
		t.Errorf("Load = %q (%d), want overloaded", got.Load, got.LoadSeverity)
	}
}
