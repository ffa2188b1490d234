package scontrol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

// pair is one Key=Value field of a --oneliner record. Keys may repeat
// (the Nodes=/CPU_IDs= groups of a detailed job record), so records are
// kept as ordered lists.
type pair struct {
	key, val string
}

type record []pair

// get returns the first value stored under key.
func (r record) get(key string) (string, bool) {
	for _, p := range r {
		if p.key == key {
			return p.val, true
		}
	}
	return "", false
}

// parseRecord splits a --oneliner line into its fields. A whitespace
// separated token only starts a new field when it looks like Key=...;
// anything else continues the previous value, so values with blanks such
// as OS=Linux 5.14.0 #1 SMP or Reason=disk failure survive.
func parseRecord(line string) record {
	var r record
	for _, tok := range strings.Fields(line) {
		if k, v, ok := splitField(tok); ok {
			r = append(r, pair{key: k, val: v})
			continue
		}
		if len(r) > 0 {
			r[len(r)-1].val += " " + tok
		}
	}
	return r
}

func splitField(tok string) (string, string, bool) {
	eq := strings.IndexByte(tok, '=')
	if eq <= 0 {
		return "", "", false
	}
	key := tok[:eq]
	if c := key[0]; !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
		return "", "", false
	}
	for i := 1; i < len(key); i++ {
		c := key[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == ':' || c == '/') {
			return "", "", false
		}
	}
	return key, tok[eq+1:], true
}

// optional maps scontrol's placeholders for "no value" to nil.
func optional(v string) *string {
	switch v {
	case "", "(null)", "N/A", "None":
		return nil
	}
	return &v
}

// parseLoad converts CPULoad=31.50 to hundredths; N/A reads as -1.
func parseLoad(v string) int {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return -1
	}
	return int(math.Round(f * 100))
}

func parseNode(r record) (domain.Node, bool, error) {
	name, ok := r.get("NodeName")
	if !ok || name == "" {
		return domain.Node{}, false, fmt.Errorf("record has no NodeName")
	}
	n := domain.Node{Name: name, CPULoad: -1}
	if v, ok := r.get("State"); ok {
		n.State = domain.ParseNodeState(v)
	}
	if v, ok := r.get("CPUTot"); ok {
		n.CPUs, _ = strconv.Atoi(v)
	}
	if v, ok := r.get("RealMemory"); ok {
		n.RealMemory, _ = strconv.Atoi(v)
	}
	if v, ok := r.get("CPULoad"); ok {
		n.CPULoad = parseLoad(v)
	}
	if v, ok := r.get("Gres"); ok {
		n.Gres = optional(v)
	}
	v, hasAlloc := r.get("AllocTRES")
	if hasAlloc {
		n.AllocTRES = optional(v)
	}
	return n, hasAlloc, nil
}

const startTimeLayout = "2006-01-02T15:04:05"

func parseJob(r record, loc *time.Location) (domain.Job, error) {
	idv, ok := r.get("JobId")
	if !ok {
		return domain.Job{}, fmt.Errorf("record has no JobId")
	}
	id, err := strconv.Atoi(idv)
	if err != nil {
		return domain.Job{}, fmt.Errorf("invalid JobId %q: %w", idv, err)
	}
	j := domain.Job{ID: id, TimeLimit: domain.TimeLimitUnlimited}
	if v, ok := r.get("UserId"); ok {
		// alice(1000)
		j.User, _, _ = strings.Cut(v, "(")
	}
	if v, ok := r.get("JobState"); ok {
		j.State = domain.ParseJobState(v)
	}
	if v, ok := r.get("StartTime"); ok {
		if t, err := time.ParseInLocation(startTimeLayout, v, loc); err == nil {
			j.StartTime = t
		}
	}
	if v, ok := r.get("TimeLimit"); ok {
		j.TimeLimit = parseTimeLimit(v)
	}
	return j, nil
}

// parseTimeLimit reads a Slurm time limit in minutes. Accepted forms are
// minutes, minutes:seconds, hours:minutes:seconds, days-hours,
// days-hours:minutes and days-hours:minutes:seconds. UNLIMITED and anything
// unreadable (Partition_Limit, NONE) yield TimeLimitUnlimited.
func parseTimeLimit(v string) int {
	days := 0
	rest := v
	if d, r, ok := strings.Cut(v, "-"); ok {
		n, err := strconv.Atoi(d)
		if err != nil {
			return domain.TimeLimitUnlimited
		}
		days, rest = n, r
	}
	parts := strings.Split(rest, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return domain.TimeLimitUnlimited
		}
		nums[i] = n
	}
	var h, m, s int
	switch {
	case days > 0 || strings.Contains(v, "-"):
		// days-hours[:minutes[:seconds]]
		h = nums[0]
		if len(nums) > 1 {
			m = nums[1]
		}
		if len(nums) > 2 {
			s = nums[2]
		}
		if len(nums) > 3 {
			return domain.TimeLimitUnlimited
		}
	case len(nums) == 1:
		m = nums[0]
	case len(nums) == 2:
		m, s = nums[0], nums[1]
	case len(nums) == 3:
		h, m, s = nums[0], nums[1], nums[2]
	default:
		return domain.TimeLimitUnlimited
	}
	total := ((days*24+h)*60+m)*60 + s
	// round partial minutes up
	return (total + 59) / 60
}
