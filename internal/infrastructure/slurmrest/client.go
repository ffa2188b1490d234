// Package slurmrest reads cluster state from slurmrestd.
package slurmrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/infrastructure/slurmrest/model"
)

const DefaultAPIVersion = "v0.0.40"

// Doer abstracts http.Client's Do so tests can swap the transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	URL        string // e.g. http://slurmctl:6820
	User       string
	Token      string
	APIVersion string
	Timeout    time.Duration
}

type Client struct {
	client Doer
	cfg    Config
	logger *slog.Logger
}

func New(client Doer, cfg Config, logger *slog.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{client: client, cfg: cfg, logger: logger}
}

func (c *Client) get(ctx context.Context, resource string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u := fmt.Sprintf("%s/slurm/%s/%s", c.cfg.URL, c.cfg.APIVersion, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Error("unable to create request for slurmrestd", "err", err, "url", u)
		return fmt.Errorf("unable to create request for slurmrestd: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.User != "" {
		req.Header.Set("X-SLURM-USER-NAME", c.cfg.User)
	}
	if c.cfg.Token != "" {
		req.Header.Set("X-SLURM-USER-TOKEN", c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("unable to do request for slurmrestd", "err", err, "url", u)
		return fmt.Errorf("unable to do request for slurmrestd: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.logger.Error("unexpected status code", "code", resp.StatusCode, "url", u)
		return fmt.Errorf("unexpected status code from %s: %d", u, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("unable to decode slurmrestd response", "err", err, "url", u)
		return fmt.Errorf("unable to decode slurmrestd response: %w", err)
	}
	return nil
}

func responseError(errs []model.Error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]error, 0, len(errs))
	for _, e := range errs {
		msg := e.Description
		if msg == "" {
			msg = e.Error
		}
		msgs = append(msgs, fmt.Errorf("slurmrestd error %d: %s", e.ErrorNumber, msg))
	}
	return errors.Join(msgs...)
}

func optional(v string) *string {
	if v == "" || v == "(null)" {
		return nil
	}
	return &v
}

// noVal is Slurm's NO_VAL; it and INFINITE (0xffffffff) mean no reading.
const noVal = 0xfffffffe

func cpuLoad(v uint32) int {
	if v >= noVal {
		return -1
	}
	return int(v)
}

func (c *Client) LoadAllNodes(ctx context.Context) ([]domain.Node, error) {
	var data model.NodesResponse
	if err := c.get(ctx, "nodes", &data); err != nil {
		return nil, err
	}
	if err := responseError(data.Errors); err != nil {
		return nil, err
	}
	nodes := make([]domain.Node, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		nodes = append(nodes, domain.Node{
			Name:       n.Name,
			State:      domain.ParseNodeStates(n.State),
			CPUs:       n.CPUs,
			RealMemory: n.RealMemory,
			CPULoad:    cpuLoad(n.CPULoad),
			Gres:       optional(n.Gres),
			AllocTRES:  optional(n.TresUsed),
		})
	}
	return nodes, nil
}

func (c *Client) LoadAllJobs(ctx context.Context) ([]domain.Job, error) {
	var data model.JobsResponse
	if err := c.get(ctx, "jobs", &data); err != nil {
		return nil, err
	}
	if err := responseError(data.Errors); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(data.Jobs))
	for _, j := range data.Jobs {
		job := domain.Job{
			ID:        j.JobID,
			User:      j.UserName,
			State:     domain.ParseJobStates(j.JobState),
			TimeLimit: domain.TimeLimitUnlimited,
		}
		if j.StartTime.Set && !j.StartTime.Infinite && j.StartTime.Number > 0 {
			job.StartTime = time.Unix(j.StartTime.Number, 0)
		}
		if j.TimeLimit.Set && !j.TimeLimit.Infinite {
			job.TimeLimit = int(j.TimeLimit.Number)
		}
		if j.JobResources != nil {
			for _, a := range j.JobResources.Nodes.Allocation {
				if job.NodeCPUs == nil {
					job.NodeCPUs = make(map[string]int)
				}
				job.NodeCPUs[a.Name] += a.CPUs.Count
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// AllocatedTRES returns the node's tres_used, which arrives with the node
// list.
func (c *Client) AllocatedTRES(ctx context.Context, n domain.Node) (*string, error) {
	return n.AllocTRES, nil
}

func (c *Client) AllocatedCPUsOnNode(j domain.Job, node string) int {
	return j.NodeCPUs[node]
}
