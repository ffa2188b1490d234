package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

// Repo is an in-memory cluster. The zero value is an empty cluster.
type Repo struct {
	Nodes []domain.Node
	Jobs  []domain.Job

	// Fault injection.
	NodesErr error
	JobsErr  error
	AllocErr map[string]error
}

// New returns a small demo cluster whose jobs started relative to now.
func New(now time.Time) *Repo {
	gpu4 := "gpu:a100:4(S:0-1)"
	gpu2 := "gpu:2"
	nodes := []domain.Node{
		{Name: "c01", State: domain.NodeAllocated, CPUs: 32, RealMemory: 191000, CPULoad: 3150, AllocTRES: ptr("cpu=32,mem=160G")},
		{Name: "c02", State: domain.NodeMixed, CPUs: 32, RealMemory: 191000, CPULoad: 1210, AllocTRES: ptr("cpu=16,mem=64000M")},
		{Name: "c03", State: domain.NodeIdle, CPUs: 32, RealMemory: 191000, CPULoad: 3},
		{Name: "c04", State: domain.NodeMixed | domain.NodeDrain, CPUs: 32, RealMemory: 191000, CPULoad: 4500, AllocTRES: ptr("cpu=8,mem=32G")},
		{Name: "c05", State: domain.NodeDown | domain.NodeNoRespond, CPUs: 32, RealMemory: 191000, CPULoad: -1},
		{Name: "g01", State: domain.NodeMixed, CPUs: 64, RealMemory: 512000, CPULoad: 4096, Gres: &gpu4, AllocTRES: ptr("cpu=24,mem=96G,gres/gpu=3")},
		{Name: "g02", State: domain.NodeIdle | domain.NodeReserved, CPUs: 16, RealMemory: 128000, CPULoad: 12, Gres: &gpu2},
	}
	jobs := []domain.Job{
		{ID: 41250, User: "alice", State: domain.JobRunning, StartTime: now.Add(-50 * time.Minute), TimeLimit: 24 * 60,
			NodeCPUs: map[string]int{"c01": 32, "c02": 8}},
		{ID: 41263, User: "bob", State: domain.JobRunning, StartTime: now.Add(-3 * time.Hour), TimeLimit: 4 * 60,
			NodeCPUs: map[string]int{"c02": 8}},
		{ID: 41270, User: "carol", State: domain.JobRunning, StartTime: now.Add(-2 * 24 * time.Hour), TimeLimit: 7 * 24 * 60,
			NodeCPUs: map[string]int{"g01": 16, "c04": 8}},
		{ID: 41288, User: "dave", State: domain.JobRunning, StartTime: now.Add(-10 * time.Minute), TimeLimit: domain.TimeLimitUnlimited,
			NodeCPUs: map[string]int{"g01": 8}},
		{ID: 41301, User: "erin", State: domain.JobPending, TimeLimit: 60},
		{ID: 41302, User: "frank", State: domain.JobComplete | domain.JobCompleting, StartTime: now.Add(-2 * time.Hour), TimeLimit: 60,
			NodeCPUs: map[string]int{"c03": 4}},
	}
	return &Repo{Nodes: nodes, Jobs: jobs}
}

func ptr(s string) *string { return &s }

func (r *Repo) LoadAllNodes(ctx context.Context) ([]domain.Node, error) {
	if r.NodesErr != nil {
		return nil, r.NodesErr
	}
	return r.Nodes, nil
}

func (r *Repo) LoadAllJobs(ctx context.Context) ([]domain.Job, error) {
	if r.JobsErr != nil {
		return nil, r.JobsErr
	}
	return r.Jobs, nil
}

func (r *Repo) AllocatedTRES(ctx context.Context, n domain.Node) (*string, error) {
	if err := r.AllocErr[n.Name]; err != nil {
		return nil, fmt.Errorf("select nodeinfo for %s: %w", n.Name, err)
	}
	return n.AllocTRES, nil
}

func (r *Repo) AllocatedCPUsOnNode(j domain.Job, node string) int {
	return j.NodeCPUs[node]
}
