// Package model holds the slurmrestd (OpenAPI v0.0.40) payloads snode reads.
// Only the fields used by snode are declared.
package model

// Error is one entry of the "errors" list every response carries.
type Error struct {
	Description string `json:"description"`
	ErrorNumber int    `json:"error_number"`
	Error       string `json:"error"`
	Source      string `json:"source"`
}

// Uint32NoVal is slurmrestd's optional number.
type Uint32NoVal struct {
	Set      bool  `json:"set"`
	Infinite bool  `json:"infinite"`
	Number   int64 `json:"number"`
}

type NodesResponse struct {
	Nodes  Nodes   `json:"nodes"`
	Errors []Error `json:"errors"`
}

type Nodes []Node

type Node struct {
	Name       string   `json:"name"`
	State      []string `json:"state"`
	CPUs       int      `json:"cpus"`
	CPULoad    uint32   `json:"cpu_load"` // hundredths, NO_VAL when unknown
	RealMemory int      `json:"real_memory"`
	Gres       string   `json:"gres"`
	TresUsed   string   `json:"tres_used"`
}

type JobsResponse struct {
	Jobs   Jobs    `json:"jobs"`
	Errors []Error `json:"errors"`
}

type Jobs []Job

type Job struct {
	JobID        int           `json:"job_id"`
	UserName     string        `json:"user_name"`
	JobState     []string      `json:"job_state"`
	StartTime    Uint32NoVal   `json:"start_time"`
	TimeLimit    Uint32NoVal   `json:"time_limit"` // minutes
	JobResources *JobResources `json:"job_resources"`
}

type JobResources struct {
	Nodes struct {
		Allocation []NodeAllocation `json:"allocation"`
	} `json:"nodes"`
}

type NodeAllocation struct {
	Name string `json:"name"`
	CPUs struct {
		Count int `json:"count"`
	} `json:"cpus"`
}
