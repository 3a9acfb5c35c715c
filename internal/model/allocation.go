package model

// User is a student competing for a project slot
type User struct {
	ID    string  `json:"user_id"`
	Score float64 `json:"score"`
}

// Project is a graduation project with a fixed number of slots
type Project struct {
	ID       string `json:"project_id"`
	Capacity int    `json:"capacity"`
}

// Preferences maps a user id to its ranked project ids, best first.
// Rank is the 1-based position in the slice.
type Preferences map[string][]string

// RankOf returns the 1-based rank of projectID for userID, or 0 when unranked
func (p Preferences) RankOf(userID, projectID string) int {
	for i, id := range p[userID] {
		if id == projectID {
			return i + 1
		}
	}
	return 0
}

// Assignment records the project granted to a user
type Assignment struct {
	UserID    string  `json:"user_id"`
	Score     float64 `json:"score"`
	ProjectID string  `json:"project_id"`
	Rank      int     `json:"preference_rank"`
	// RejectedBefore lists the better-ranked projects that were already full
	RejectedBefore []string `json:"previous_preferences"`
	// SwappedWith is set when an improvement pass exchanged this slot
	SwappedWith string `json:"swapped_with,omitempty"`
}

// Result is the outcome of one allocation pass
type Result struct {
	Assignments []Assignment   `json:"assignments"`
	Unassigned  []string       `json:"unassigned"`
	Remaining   map[string]int `json:"remaining"`
}

// AssignmentFor finds the assignment of a user
func (r *Result) AssignmentFor(userID string) (Assignment, bool) {
	for _, a := range r.Assignments {
		if a.UserID == userID {
			return a, true
		}
	}
	return Assignment{}, false
}

// Clone returns a deep copy of the result
func (r *Result) Clone() *Result {
	out := &Result{
		Assignments: make([]Assignment, len(r.Assignments)),
		Unassigned:  append([]string{}, r.Unassigned...),
		Remaining:   make(map[string]int, len(r.Remaining)),
	}
	for i, a := range r.Assignments {
		a.RejectedBefore = append([]string{}, a.RejectedBefore...)
		out.Assignments[i] = a
	}
	for k, v := range r.Remaining {
		out.Remaining[k] = v
	}
	return out
}

// Swap describes an exchange of projects between two assigned users
type Swap struct {
	UserA       string `json:"user_a"`
	UserB       string `json:"user_b"`
	ProjectA    string `json:"project_a"` // held by UserA before the swap
	ProjectB    string `json:"project_b"` // held by UserB before the swap
	Improvement int    `json:"improvement"`
}

// ProjectRoster lists the users assigned to a project
type ProjectRoster struct {
	ProjectID string   `json:"project_id"`
	UserIDs   []string `json:"users"`
}

// ProjectSummary aggregates one project's allocation
type ProjectSummary struct {
	ProjectID string  `json:"project_id"`
	Capacity  int     `json:"capacity"`
	Assigned  int     `json:"assigned"`
	Remaining int     `json:"remaining"`
	MeanScore float64 `json:"mean_score"` // zero when Assigned is zero
}

// Tie-break rules for users with equal scores
const (
	TieBreakID    = "id"    // identifier ascending
	TieBreakInput = "input" // input order
)
