package domain

import "context"

// ClusterRepo is the read-only view of the scheduler a snapshot is built from.
type ClusterRepo interface {
	LoadAllNodes(ctx context.Context) ([]Node, error)
	LoadAllJobs(ctx context.Context) ([]Job, error)
	// AllocatedTRES returns the allocated-resource descriptor of a node.
	// nil with a nil error means nothing is allocated.
	AllocatedTRES(ctx context.Context, n Node) (*string, error)
	AllocatedCPUsOnNode(j Job, node string) int
}
