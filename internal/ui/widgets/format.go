package widgets

import (
	"fmt"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

// LoadWidth is the width of the text returned by Load.
const LoadWidth = 10

// Load formats a node load given in hundredths and classifies it against
// the node's cpu count. Ratios above 1.2 are overloaded and marked "(!)",
// ratios above 0.75 call for caution. A negative load means the scheduler
// has no reading and yields "N/A".
//
// cpus must be at least 1. The scheduler never reports a node with zero
// configured cpus; a zero here is bad upstream data.
func Load(load, cpus int) (string, domain.Severity) {
	if load < 0 {
		return fmt.Sprintf("%*s", LoadWidth, "N/A"), domain.SeverityNone
	}
	l := float64(load) / 100
	factor := l / float64(cpus)
	switch {
	case factor > 1.2:
		return fmt.Sprintf("%*.2f(!)", LoadWidth-3, l), domain.SeverityOverload
	case factor > 0.75:
		return fmt.Sprintf("%*.2f", LoadWidth, l), domain.SeverityCaution
	}
	return fmt.Sprintf("%*.2f", LoadWidth, l), domain.SeverityNone
}

// TimeLeft renders remaining seconds as D-HH:MM:SS, H:MM:SS, M:SS or 0:SS,
// dropping leading zero components. Negative input renders as "---".
func TimeLeft(secs int64) string {
	if secs < 0 {
		return "---"
	}
	s := secs % 60
	m := secs / 60 % 60
	h := secs / 3600 % 24
	d := secs / 86400
	switch {
	case d > 0:
		return fmt.Sprintf("%d-%02d:%02d:%02d", d, h, m, s)
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
