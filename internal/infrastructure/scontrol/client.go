// Package scontrol reads cluster state by running the scontrol command.
package scontrol

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/hostlist"
)

// ExecCommandFunc has the signature of exec.CommandContext so tests can fake
// the scontrol binary.
type ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Client runs scontrol. It keeps per-snapshot state and is not safe for
// concurrent use.
type Client struct {
	path        string
	execCommand ExecCommandFunc
	loc         *time.Location
	logger      *slog.Logger

	// nodes whose listing carried no AllocTRES field
	unreported map[string]bool
}

func New(path string, logger *slog.Logger) *Client {
	if path == "" {
		path = "scontrol"
	}
	return &Client{
		path:        path,
		execCommand: exec.CommandContext,
		loc:         time.Local,
		logger:      logger,
		unreported:  make(map[string]bool),
	}
}

func (c *Client) WithExecCommand(fn ExecCommandFunc) *Client {
	c.execCommand = fn
	return c
}

// WithLocation sets the zone scontrol's timestamps are read in.
func (c *Client) WithLocation(loc *time.Location) *Client {
	c.loc = loc
	return c
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := c.execCommand(ctx, c.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		c.logger.Error("failed to exec scontrol command", "cmd", cmd.String(), "stderr", strings.TrimSpace(stderr.String()), "err", err)
		return nil, fmt.Errorf("failed to exec %s: %w", cmd.String(), err)
	}
	return out, nil
}

// LoadAllNodes runs `scontrol show node --oneliner`.
func (c *Client) LoadAllNodes(ctx context.Context) ([]domain.Node, error) {
	out, err := c.run(ctx, "show", "node", "--oneliner")
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.Node, 0)
	c.unreported = make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, hasAlloc, err := parseNode(parseRecord(line))
		if err != nil {
			c.logger.Warn("invalid scontrol node line, skip", "line", line, "err", err)
			continue
		}
		if !hasAlloc {
			c.unreported[n.Name] = true
		}
		nodes = append(nodes, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scontrol node output: %w", err)
	}
	return nodes, nil
}

// LoadAllJobs runs `scontrol show job --details --oneliner`. The detail
// groups (Nodes=<hostlist> CPU_IDs=<ids>) give the cpus held on each node.
func (c *Client) LoadAllJobs(ctx context.Context) ([]domain.Job, error) {
	out, err := c.run(ctx, "show", "job", "--details", "--oneliner")
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "JobId=") {
			// "No jobs in the system"
			continue
		}
		r := parseRecord(line)
		j, err := parseJob(r, c.loc)
		if err != nil {
			c.logger.Warn("invalid scontrol job line, skip", "line", line, "err", err)
			continue
		}
		j.NodeCPUs = c.nodeCPUs(j.ID, r)
		jobs = append(jobs, j)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scontrol job output: %w", err)
	}
	return jobs, nil
}

func (c *Client) nodeCPUs(id int, r record) map[string]int {
	var m map[string]int
	for i, p := range r {
		if p.key != "Nodes" || i+1 >= len(r) || r[i+1].key != "CPU_IDs" {
			continue
		}
		hosts, err := hostlist.Expand(p.val)
		if err != nil {
			c.logger.Warn("invalid node list in job details", "job", id, "nodes", p.val, "err", err)
			continue
		}
		n, err := hostlist.CountIDs(r[i+1].val)
		if err != nil {
			c.logger.Warn("invalid cpu ids in job details", "job", id, "cpu_ids", r[i+1].val, "err", err)
			continue
		}
		if m == nil {
			m = make(map[string]int)
		}
		for _, h := range hosts {
			m[h] += n
		}
	}
	return m
}

// AllocatedTRES returns the AllocTRES the node listing carried. Nodes whose
// listing lacked the field are queried on their own.
func (c *Client) AllocatedTRES(ctx context.Context, n domain.Node) (*string, error) {
	if !c.unreported[n.Name] {
		return n.AllocTRES, nil
	}
	out, err := c.run(ctx, "show", "node", n.Name, "--oneliner")
	if err != nil {
		return nil, err
	}
	fresh, hasAlloc, err := parseNode(parseRecord(strings.TrimSpace(string(out))))
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.Name, err)
	}
	if !hasAlloc {
		return nil, fmt.Errorf("node %s: scontrol reports no AllocTRES", n.Name)
	}
	return fresh.AllocTRES, nil
}

func (c *Client) AllocatedCPUsOnNode(j domain.Job, node string) int {
	return j.NodeCPUs[node]
}
