// Package tres reads the trackable-resource strings the scheduler attaches to
// nodes: the allocated descriptor ("cpu=4,mem=2G,gres/gpu=1") and the
// configured generic resources ("gpu:a100:4(S:0-1)").
//
// Nothing here fails. A missing or mangled value reads as zero, and a node
// without any gpu resource reads as NoGPU.
package tres

import (
	"strconv"
	"strings"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

// NoGPU is returned by ConfiguredGPUs for nodes without a gpu resource.
const NoGPU = -1

// ParseAlloc extracts cpu, memory (MiB) and gpu counts from an allocated
// resource descriptor. Keys are looked up independently, so their order
// and the presence of other keys do not matter.
func ParseAlloc(s string) domain.Allocation {
	kv := entries(s)
	a := domain.Allocation{
		CPUs:   atoi(kv["cpu"]),
		MemMiB: memMiB(kv["mem"]),
	}
	switch {
	case kv["gres/gpu"] != "":
		a.GPUs = atoi(kv["gres/gpu"])
	case kv["gpu"] != "":
		a.GPUs = atoi(kv["gpu"])
	default:
		// only typed entries, e.g. gres/gpu:a100=2
		for k, v := range kv {
			if strings.HasPrefix(k, "gres/gpu:") {
				a.GPUs += atoi(v)
			}
		}
	}
	return a
}

// entries splits "k1=v1,k2=v2" into a map. The first occurrence of a key wins.
func entries(s string) map[string]string {
	kv := make(map[string]string)
	for _, tok := range strings.Split(s, ",") {
		eq := strings.IndexByte(tok, '=')
		if eq <= 0 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(tok[:eq]))
		if _, seen := kv[k]; seen {
			continue
		}
		kv[k] = strings.TrimSpace(tok[eq+1:])
	}
	return kv
}

// memMiB reads a memory quantity with an optional unit suffix. M is the
// default; fractional values are truncated after conversion.
func memMiB(v string) int {
	num, unit := splitUnit(v)
	if num == "" {
		return 0
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0
	}
	switch unit {
	case 0, 'M':
	case 'K':
		f /= 1024
	case 'G':
		f *= 1024
	case 'T':
		f *= 1024 * 1024
	case 'P':
		f *= 1024 * 1024 * 1024
	default:
		return 0
	}
	return int(f)
}

// splitUnit separates the numeric prefix of v from its unit letter. The unit
// is 0 when v carries none.
func splitUnit(v string) (string, byte) {
	i := 0
	for i < len(v) && (v[i] >= '0' && v[i] <= '9' || v[i] == '.') {
		i++
	}
	if i == len(v) {
		return v, 0
	}
	u := v[i]
	if u >= 'a' && u <= 'z' {
		u -= 'a' - 'A'
	}
	return v[:i], u
}

// atoi reads the leading decimal digits of v; anything else is 0.
func atoi(v string) int {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(v[:i])
	if err != nil {
		return 0
	}
	return n
}

// ConfiguredGPUs returns the number of gpus a node is configured with, or
// NoGPU when gres is nil or mentions no gpu at all. Accepted layouts include
// "gpu=2", "gpu:2", "gres:gpu=2", "gpu:a100:4(S:0-1)"; several gpu entries
// are summed. A gpu entry whose count cannot be read counts as 0.
func ConfiguredGPUs(gres *string) int {
	if gres == nil || !strings.Contains(*gres, "gpu") {
		return NoGPU
	}
	total := 0
	for _, ent := range splitTopLevel(*gres) {
		ix := strings.Index(ent, "gpu")
		if ix < 0 {
			continue
		}
		rest := ent[ix+len("gpu"):]
		if p := strings.IndexByte(rest, '('); p >= 0 {
			rest = rest[:p]
		}
		if rest == "" || (rest[0] != ':' && rest[0] != '=') {
			continue
		}
		fields := strings.FieldsFunc(rest[1:], func(r rune) bool { return r == ':' || r == '=' })
		if len(fields) == 0 {
			continue
		}
		total += atoi(strings.TrimSpace(fields[len(fields)-1]))
	}
	return total
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}
