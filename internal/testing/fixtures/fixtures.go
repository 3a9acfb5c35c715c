package fixtures

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/gradproj/internal/database"
	"github.com/forgo/gradproj/internal/model"
)

// ============================================================================
// Allocation Instances
// ============================================================================

// InstanceOpts customizes a generated allocation input
type InstanceOpts struct {
	Seed        uint64
	Users       int
	Projects    int
	MaxCapacity int
	ListLength  int
}

// Instance is one complete allocation input
type Instance struct {
	Users    []model.User
	Projects []model.Project
	Prefs    model.Preferences
}

// NewInstance generates users with scores on a 0-4 scale in steps of 0.25
// (so ties occur), projects with capacities in [0, MaxCapacity], and
// preference lists of up to ListLength distinct projects.
func NewInstance(opts ...func(*InstanceOpts)) Instance {
	o := &InstanceOpts{
		Seed:        1,
		Users:       12,
		Projects:    4,
		MaxCapacity: 3,
		ListLength:  3,
	}
	for _, fn := range opts {
		fn(o)
	}

	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
	inst := Instance{Prefs: make(model.Preferences, o.Users)}

	for i := 0; i < o.Projects; i++ {
		inst.Projects = append(inst.Projects, model.Project{
			ID:       fmt.Sprintf("P%02d", i+1),
			Capacity: rng.IntN(o.MaxCapacity + 1),
		})
	}

	for i := 0; i < o.Users; i++ {
		id := fmt.Sprintf("U%03d", i+1)
		inst.Users = append(inst.Users, model.User{
			ID:    id,
			Score: float64(rng.IntN(17)) / 4,
		})

		n := min(o.ListLength, o.Projects)
		perm := rng.Perm(o.Projects)[:rng.IntN(n+1)]
		list := make([]string, 0, len(perm))
		for _, p := range perm {
			list = append(list, inst.Projects[p].ID)
		}
		inst.Prefs[id] = list
	}

	return inst
}

// ============================================================================
// Archived Runs
// ============================================================================

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// ctx returns a context with timeout
func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// RunOpts customizes an archived run
type RunOpts struct {
	ID          string
	RanOn       time.Time
	TieBreak    string
	Assignments []model.Assignment
	Unassigned  []string
}

// CreateRun inserts a run and its assignments with raw queries
func (f *Factory) CreateRun(t *testing.T, opts ...func(*RunOpts)) *model.AllocationRun {
	t.Helper()

	o := &RunOpts{
		ID:       uuid.NewString(),
		RanOn:    time.Now().UTC().Truncate(time.Millisecond),
		TieBreak: model.TieBreakID,
		Assignments: []model.Assignment{
			{UserID: "A", Score: 3.9, ProjectID: "P1", Rank: 1, RejectedBefore: []string{}},
			{UserID: "B", Score: 3.5, ProjectID: "P2", Rank: 2, RejectedBefore: []string{"P1"}},
		},
		Unassigned: []string{"C"},
	}
	for _, fn := range opts {
		fn(o)
	}

	total := 0
	for _, a := range o.Assignments {
		total += a.Rank
	}

	query := `
		CREATE allocation_run CONTENT {
			run_id: $run_id,
			ran_on: <datetime>$ran_on,
			tie_break: $tie_break,
			total_rank: $total_rank,
			fingerprint: $fingerprint,
			assigned_count: $assigned_count,
			unassigned: $unassigned
		}
	`
	vars := map[string]interface{}{
		"run_id":         o.ID,
		"ran_on":         o.RanOn.Format(time.RFC3339Nano),
		"tie_break":      o.TieBreak,
		"total_rank":     total,
		"fingerprint":    "fixture-" + o.ID,
		"assigned_count": len(o.Assignments),
		"unassigned":     o.Unassigned,
	}
	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create run: %v", err)
	}

	for _, a := range o.Assignments {
		query := `
			CREATE allocation_assignment CONTENT {
				run_id: $run_id,
				user_id: $user_id,
				score: $score,
				project_id: $project_id,
				preference_rank: $preference_rank,
				previous_preferences: $previous_preferences
			}
		`
		vars := map[string]interface{}{
			"run_id":               o.ID,
			"user_id":              a.UserID,
			"score":                a.Score,
			"project_id":           a.ProjectID,
			"preference_rank":      a.Rank,
			"previous_preferences": a.RejectedBefore,
		}
		if err := f.db.Execute(ctx(t), query, vars); err != nil {
			t.Fatalf("fixtures: failed to create assignment: %v", err)
		}
	}

	return &model.AllocationRun{
		ID:          o.ID,
		RanOn:       o.RanOn,
		TieBreak:    o.TieBreak,
		TotalRank:   total,
		Fingerprint: "fixture-" + o.ID,
		Assignments: o.Assignments,
		Unassigned:  o.Unassigned,
	}
}
