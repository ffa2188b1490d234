package domain

import "time"

// Node is one compute host as reported by the scheduler.
type Node struct {
	Name       string
	State      NodeState
	CPUs       int     // configured cpus
	RealMemory int     // configured memory, MiB
	CPULoad    int     // hundredths; negative when unavailable
	Gres       *string // generic resources, nil when the node has none

	// AllocTRES is the allocated-resource descriptor carried along by
	// backends that receive it with the node list. Use ClusterRepo.AllocatedTRES
	// to read it.
	AllocTRES *string
}

// Label is the node name prefixed with its state symbol.
func (n Node) Label() string {
	return n.State.Symbol() + n.Name
}

// TimeLimitUnlimited marks a job without a wall-clock limit.
const TimeLimitUnlimited = -1

type Job struct {
	ID        int
	User      string
	State     JobState
	StartTime time.Time
	TimeLimit int // minutes

	// NodeCPUs maps node name -> cpus allocated there. Only the repo that
	// produced the job interprets it.
	NodeCPUs map[string]int
}

// Allocation is what a node's allocated-resource descriptor boils down to.
// Missing keys stay 0.
type Allocation struct {
	CPUs   int
	MemMiB int
	GPUs   int
}

// Severity tags the load cell of a row.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityCaution
	SeverityOverload
)

// Row is one formatted line of the snapshot.
type Row struct {
	Name  string
	Label string
	CPU   string
	Load  string
	Mem   string
	GPU   string
	Jobs  string

	LoadSeverity Severity

	// allocated share of configured cpus and memory, 0..1
	CPUUsed float64
	MemUsed float64
}
