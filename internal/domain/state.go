package domain

import "strings"

// NodeState mirrors the scheduler's node state word: a base state in the low
// four bits and independent flag bits above.
type NodeState uint32

const (
	NodeUnknown NodeState = iota
	NodeDown
	NodeIdle
	NodeAllocated
	NodeError
	NodeMixed
	NodeFuture
)

const NodeStateBase NodeState = 0x0000000f

var (
	NodeNet             = slurmBit(4)
	NodeReserved        = slurmBit(5)
	NodeUndrain         = slurmBit(6)
	NodeCloud           = slurmBit(7)
	NodeResume          = slurmBit(8)
	NodeDrain           = slurmBit(9)
	NodeCompleting      = slurmBit(10)
	NodeNoRespond       = slurmBit(11)
	NodePoweredDown     = slurmBit(12)
	NodeFail            = slurmBit(13)
	NodePoweringUp      = slurmBit(14)
	NodeMaint           = slurmBit(15)
	NodeRebootRequested = slurmBit(16)
	NodeRebootCancel    = slurmBit(17)
	NodePoweringDown    = slurmBit(18)
	NodeDynamicFuture   = slurmBit(19)
	NodeRebootIssued    = slurmBit(20)
	NodePlanned         = slurmBit(21)
	NodeInvalidReg      = slurmBit(22)
	NodePowerDown       = slurmBit(23)
	NodePowerUp         = slurmBit(24)
	NodePowerDrain      = slurmBit(25)
	NodeDynamicNorm     = slurmBit(26)
)

func slurmBit(offset uint) NodeState {
	return NodeState(1) << offset
}

func (s NodeState) Base() NodeState { return s & NodeStateBase }

func (s NodeState) Has(flag NodeState) bool { return s&flag != 0 }

// Symbol is the legend prefix for the state. The checks form a priority
// cascade: a node that is both unreachable and draining shows "**" only.
func (s NodeState) Symbol() string {
	base := s.Base()
	switch {
	case s.Has(NodeNoRespond):
		return "**"
	case s.Has(NodeDrain):
		if base > NodeDown && base < NodeFuture {
			return "-"
		}
		if base == NodeDown {
			return "*"
		}
		// Draining UNKNOWN or FUTURE nodes get no symbol.
		return ""
	case s.Has(NodeReserved):
		return "#"
	case base == NodeDown:
		return "*"
	}
	return ""
}

var nodeBaseNames = map[string]NodeState{
	"UNKNOWN":   NodeUnknown,
	"UNK":       NodeUnknown,
	"DOWN":      NodeDown,
	"IDLE":      NodeIdle,
	"ALLOCATED": NodeAllocated,
	"ALLOC":     NodeAllocated,
	"ERROR":     NodeError,
	"MIXED":     NodeMixed,
	"MIX":       NodeMixed,
	"FUTURE":    NodeFuture,
	"FUTR":      NodeFuture,
	// compound names printed for drained nodes
	"DRAINED":  NodeIdle | NodeDrain,
	"DRAIN":    NodeIdle | NodeDrain,
	"DRAINING": NodeAllocated | NodeDrain,
	"DRNG":     NodeAllocated | NodeDrain,
}

var nodeFlagNames = map[string]NodeState{
	"NET":              NodeNet,
	"RESERVED":         NodeReserved,
	"RESV":             NodeReserved,
	"UNDRAIN":          NodeUndrain,
	"CLOUD":            NodeCloud,
	"RESUME":           NodeResume,
	"DRAIN":            NodeDrain,
	"COMPLETING":       NodeCompleting,
	"COMP":             NodeCompleting,
	"NOT_RESPONDING":   NodeNoRespond,
	"NO_RESPOND":       NodeNoRespond,
	"POWERED_DOWN":     NodePoweredDown,
	"POWER_DOWN":       NodePowerDown,
	"POWERING_UP":      NodePoweringUp,
	"POWERING_DOWN":    NodePoweringDown,
	"POWER_UP":         NodePowerUp,
	"POWER_DRAIN":      NodePowerDrain,
	"FAIL":             NodeFail,
	"MAINTENANCE":      NodeMaint,
	"MAINT":            NodeMaint,
	"REBOOT_REQUESTED": NodeRebootRequested,
	"REBOOT_CANCEL":    NodeRebootCancel,
	"REBOOT_ISSUED":    NodeRebootIssued,
	"DYNAMIC_FUTURE":   NodeDynamicFuture,
	"DYNAMIC_NORM":     NodeDynamicNorm,
	"PLANNED":          NodePlanned,
	"INVALID_REG":      NodeInvalidReg,
}

// sinfo style single character suffixes.
var nodeSuffixFlags = map[byte]NodeState{
	'*': NodeNoRespond,
	'~': NodePoweredDown,
	'#': NodePoweringUp,
	'%': NodePoweringDown,
	'$': NodeMaint,
	'@': NodeRebootRequested,
}

// ParseNodeState decodes textual node states such as "IDLE+DRAIN",
// "DOWN*+NOT_RESPONDING", "mix" or "drained". Unknown words are ignored.
func ParseNodeState(s string) NodeState {
	return ParseNodeStates(strings.Split(s, "+"))
}

// ParseNodeStates decodes a list of state names, the first being the base
// state, e.g. ["MIXED", "RESERVED"].
func ParseNodeStates(names []string) NodeState {
	var st NodeState
	for i, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		for len(name) > 0 {
			f, ok := nodeSuffixFlags[name[len(name)-1]]
			if !ok {
				break
			}
			st |= f
			name = name[:len(name)-1]
		}
		if name == "" {
			continue
		}
		if i == 0 {
			if b, ok := nodeBaseNames[name]; ok {
				st |= b
				continue
			}
		}
		if f, ok := nodeFlagNames[name]; ok {
			st |= f
		}
	}
	return st
}

// JobState is the base job state with flag bits above the low byte.
type JobState uint32

const (
	JobPending JobState = iota
	JobRunning
	JobSuspended
	JobComplete
	JobCancelled
	JobFailed
	JobTimeout
	JobNodeFail
	JobPreempted
	JobBootFail
	JobDeadline
	JobOOM
)

const (
	JobStateBase   JobState = 0x000000ff
	JobRequeue     JobState = 1 << 10
	JobResizing    JobState = 1 << 13
	JobConfiguring JobState = 1 << 14
	JobCompleting  JobState = 1 << 15
	JobStopped     JobState = 1 << 16
	JobSignaling   JobState = 1 << 22
	JobStageOut    JobState = 1 << 23
)

func (s JobState) Base() JobState { return s & JobStateBase }

// Running reports a plain running job. Flagged states such as CONFIGURING
// or COMPLETING are not running.
func (s JobState) Running() bool { return s == JobRunning }

var jobStateNames = map[string]JobState{
	"PENDING":       JobPending,
	"PD":            JobPending,
	"RUNNING":       JobRunning,
	"R":             JobRunning,
	"SUSPENDED":     JobSuspended,
	"S":             JobSuspended,
	"COMPLETED":     JobComplete,
	"CD":            JobComplete,
	"CANCELLED":     JobCancelled,
	"CA":            JobCancelled,
	"FAILED":        JobFailed,
	"F":             JobFailed,
	"TIMEOUT":       JobTimeout,
	"TO":            JobTimeout,
	"NODE_FAIL":     JobNodeFail,
	"NF":            JobNodeFail,
	"PREEMPTED":     JobPreempted,
	"PR":            JobPreempted,
	"BOOT_FAIL":     JobBootFail,
	"BF":            JobBootFail,
	"DEADLINE":      JobDeadline,
	"DL":            JobDeadline,
	"OUT_OF_MEMORY": JobOOM,
	"OOM":           JobOOM,
}

var jobFlagNames = map[string]JobState{
	"COMPLETING":  JobComplete | JobCompleting,
	"CG":          JobComplete | JobCompleting,
	"CONFIGURING": JobRunning | JobConfiguring,
	"CF":          JobRunning | JobConfiguring,
	"RESIZING":    JobRunning | JobResizing,
	"RS":          JobRunning | JobResizing,
	"STAGE_OUT":   JobComplete | JobStageOut,
	"SO":          JobComplete | JobStageOut,
	"SIGNALING":   JobRunning | JobSignaling,
	"STOPPED":     JobRunning | JobStopped,
	"ST":          JobRunning | JobStopped,
	"REQUEUED":    JobPending | JobRequeue,
	"RQ":          JobPending | JobRequeue,
}

// ParseJobState decodes one job state name. Unknown names decode to
// JobPending so they never count as running.
func ParseJobState(s string) JobState {
	return ParseJobStates([]string{s})
}

// ParseJobStates decodes a list of state names as reported by slurmrestd,
// e.g. ["RUNNING", "COMPLETING"]. The first base name wins; flag names add
// their bits.
func ParseJobStates(names []string) JobState {
	var st JobState
	haveBase := false
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if b, ok := jobStateNames[name]; ok {
			if !haveBase {
				st = st&^JobStateBase | b
				haveBase = true
			}
			continue
		}
		if f, ok := jobFlagNames[name]; ok {
			flags := f &^ JobStateBase
			st |= flags
			if !haveBase {
				st = st&^JobStateBase | f.Base()
			}
		}
	}
	return st
}
