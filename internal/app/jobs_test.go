package app

import (
	"strings"
	"testing"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func byMap(j domain.Job, node string) int { return j.NodeCPUs[node] }

func TestJobsOnNodeFilters(t *testing.T) {
	jobs := []domain.Job{
		{ID: 1, User: "alice", State: domain.JobRunning, StartTime: now.Add(-5 * time.Minute), TimeLimit: 15,
			NodeCPUs: map[string]int{"c1": 2}},
		{ID: 2, User: "bob", State: domain.JobPending, TimeLimit: 15,
			NodeCPUs: map[string]int{"c1": 4}},
		{ID: 3, User: "carol", State: domain.JobRunning, StartTime: now, TimeLimit: 15,
			NodeCPUs: map[string]int{"c2": 4}},
		{ID: 4, User: "dave", State: domain.JobRunning | domain.JobCompleting, StartTime: now, TimeLimit: 15,
			NodeCPUs: map[string]int{"c1": 1}},
		{ID: 5, User: "erin", State: domain.JobRunning, StartTime: now.Add(-time.Minute), TimeLimit: 2,
			NodeCPUs: map[string]int{"c1": 1, "c2": 1}},
	}
	got := JobsOnNode("c1", jobs, byMap, now, 0)
	want := "[1 alice 10:00] [5 erin 1:00] "
	if got != want {
		t.Fatalf("JobsOnNode(c1) = %q, want %q", got, want)
	}
	got = JobsOnNode("c2", jobs, byMap, now, 0)
	want = "[3 carol 15:00] [5 erin 1:00] "
	if got != want {
		t.Fatalf("JobsOnNode(c2) = %q, want %q", got, want)
	}
	if got := JobsOnNode("c9", jobs, byMap, now, 0); got != "" {
		t.Fatalf("JobsOnNode(c9) = %q, want empty", got)
	}
}

func TestJobsOnNodeRunningWithoutCPUs(t *testing.T) {
	jobs := []domain.Job{{ID: 7, User: "x", State: domain.JobRunning, StartTime: now, TimeLimit: 5}}
	if got := JobsOnNode("c1", jobs, byMap, now, 0); got != "" {
		t.Fatalf("job with 0 cpus on node included: %q", got)
	}
}

func TestJobsOnNodeTimeLeft(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		limit int
		want  string
	}{
		{"expired", now.Add(-2 * time.Hour), 60, "[9 u ---] "},
		{"exactly at limit", now.Add(-time.Hour), 60, "[9 u 0:00] "},
		{"days", now.Add(-time.Hour), 3 * 24 * 60, "[9 u 2-23:00:00] "},
		{"unlimited", now.Add(-time.Hour), domain.TimeLimitUnlimited, "[9 u UNLIMITED] "},
	}
	for _, c := range cases {
		jobs := []domain.Job{{ID: 9, User: "u", State: domain.JobRunning, StartTime: c.start, TimeLimit: c.limit,
			NodeCPUs: map[string]int{"n": 1}}}
		if got := JobsOnNode("n", jobs, byMap, now, 0); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestJobsOnNodeMaxLen(t *testing.T) {
	var jobs []domain.Job
	for i := 0; i < 10; i++ {
		jobs = append(jobs, domain.Job{ID: 100 + i, User: "user", State: domain.JobRunning, StartTime: now, TimeLimit: 10,
			NodeCPUs: map[string]int{"n": 1}})
	}
	full := JobsOnNode("n", jobs, byMap, now, 0)
	// each token is "[10x user 10:00] ", 17 bytes
	if len(full) != 170 {
		t.Fatalf("full field length = %d, want 170", len(full))
	}
	if got := JobsOnNode("n", jobs, byMap, now, 170); got != full {
		t.Fatalf("field at exactly the cap was truncated: %q", got)
	}
	got := JobsOnNode("n", jobs, byMap, now, 40)
	want := "[100 user 10:00] [101 user 10:00] ..."
	if got != want {
		t.Fatalf("capped field = %q, want %q", got, want)
	}
	if len(got) > 40 {
		t.Fatalf("capped field longer than cap: %d", len(got))
	}
	if got := JobsOnNode("n", jobs, byMap, now, 10); !strings.HasSuffix(got, "...") || len(got) > 10 {
		t.Fatalf("tiny cap = %q", got)
	}
	for maxLen, want := range map[int]string{1: ".", 2: "..", 3: "..."} {
		if got := JobsOnNode("n", jobs, byMap, now, maxLen); got != want {
			t.Errorf("cap %d = %q, want %q", maxLen, got, want)
		}
	}
}
