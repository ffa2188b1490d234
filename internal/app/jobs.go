package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/ui/widgets"
)

// CPUCounter reports how many cpus a job holds on a node.
type CPUCounter func(j domain.Job, node string) int

const truncMark = "..."

// JobsOnNode renders the running jobs that hold cpus on node as
// "[<id> <user> <time left>] " tokens, in job list order. A positive maxLen
// caps the result; a capped field ends in "...".
func JobsOnNode(node string, jobs []domain.Job, cpusOn CPUCounter, now time.Time, maxLen int) string {
	var tokens []string
	size := 0
	for _, j := range jobs {
		if !j.State.Running() || cpusOn(j, node) <= 0 {
			continue
		}
		tok := fmt.Sprintf("[%d %s %s] ", j.ID, j.User, timeLeft(j, now))
		tokens = append(tokens, tok)
		size += len(tok)
	}
	if maxLen <= 0 || size <= maxLen {
		return strings.Join(tokens, "")
	}
	if maxLen <= len(truncMark) {
		return truncMark[:maxLen]
	}
	var b strings.Builder
	for _, tok := range tokens {
		if b.Len()+len(tok) > maxLen-len(truncMark) {
			break
		}
		b.WriteString(tok)
	}
	b.WriteString(truncMark)
	return b.String()
}

func timeLeft(j domain.Job, now time.Time) string {
	if j.TimeLimit == domain.TimeLimitUnlimited {
		return "UNLIMITED"
	}
	elapsed := int64(now.Sub(j.StartTime) / time.Second)
	return widgets.TimeLeft(int64(j.TimeLimit)*60 - elapsed)
}
