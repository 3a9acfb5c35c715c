package model

import "time"

// AllocationRun is the archived record of one allocate invocation
type AllocationRun struct {
	ID          string       `json:"run_id"`
	RanOn       time.Time    `json:"ran_on"`
	TieBreak    string       `json:"tie_break"`
	TotalRank   int          `json:"total_rank"`
	Fingerprint string       `json:"fingerprint"`
	Swap        *Swap        `json:"swap,omitempty"`
	Assignments []Assignment `json:"assignments"`
	Unassigned  []string     `json:"unassigned"`
}

// AssignedCount returns the number of users that received a project
func (r *AllocationRun) AssignedCount() int {
	return len(r.Assignments)
}

// UnassignedCount returns the number of users left without a project
func (r *AllocationRun) UnassignedCount() int {
	return len(r.Unassigned)
}
