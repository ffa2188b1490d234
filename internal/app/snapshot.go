package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

// SnapshotKind names the listing a snapshot failed on.
type SnapshotKind int

const (
	NodesSnapshot SnapshotKind = iota + 1
	JobsSnapshot
)

func (k SnapshotKind) String() string {
	switch k {
	case NodesSnapshot:
		return "node"
	case JobsSnapshot:
		return "job"
	}
	return "unknown"
}

// SnapshotError is returned when the node or job list cannot be loaded.
// Nothing can be rendered without both.
type SnapshotError struct {
	Kind SnapshotKind
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("load %s status failed: %v", e.Kind, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

type Options struct {
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// MaxJobsLen caps the jobs field; 0 means no cap.
	MaxJobsLen int
	// Diag receives the skipped-node line when Logger drops warnings.
	Diag io.Writer
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Snapshot loads nodes and jobs from repo and builds one row per node, in
// node list order. A node whose allocation descriptor cannot be read is
// logged (or written to Diag) and skipped.
func Snapshot(ctx context.Context, repo domain.ClusterRepo, opts Options) ([]domain.Row, error) {
	log := opts.logger()

	nodes, err := repo.LoadAllNodes(ctx)
	if err != nil {
		return nil, &SnapshotError{Kind: NodesSnapshot, Err: err}
	}
	jobs, err := repo.LoadAllJobs(ctx)
	if err != nil {
		return nil, &SnapshotError{Kind: JobsSnapshot, Err: err}
	}
	log.Debug("snapshot loaded", "nodes", len(nodes), "jobs", len(jobs))

	now := opts.now()
	rows := make([]domain.Row, 0, len(nodes))
	for _, n := range nodes {
		alloc, err := repo.AllocatedTRES(ctx, n)
		if err != nil {
			if log.Enabled(ctx, slog.LevelWarn) {
				log.Warn("failed to get allocated tres, skip node", "node", n.Name, "err", err)
			} else if opts.Diag != nil {
				fmt.Fprintf(opts.Diag, "failed to get allocated tres for %s, skip node: %v\n", n.Name, err)
			}
			continue
		}
		rows = append(rows, BuildRow(n, alloc, jobs, repo.AllocatedCPUsOnNode, now, opts.MaxJobsLen))
	}
	return rows, nil
}
