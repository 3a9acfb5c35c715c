package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/gradproj/internal/database"
	"github.com/forgo/gradproj/internal/model"
)

// ErrRunExists is returned when a run id has already been archived
var ErrRunExists = errors.New("allocation run already archived")

// RunRepository archives allocation runs
type RunRepository struct {
	db database.Database
}

// NewRunRepository creates a new run repository
func NewRunRepository(db database.Database) *RunRepository {
	return &RunRepository{db: db}
}

// Create writes the run and all of its assignments atomically
func (r *RunRepository) Create(ctx context.Context, run *model.AllocationRun) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}

	existing, err := r.exists(ctx, run.ID)
	if err != nil {
		return err
	}
	if existing {
		return fmt.Errorf("%w: %s", ErrRunExists, run.ID)
	}

	batch := database.NewAtomicBatch()
	batch.Add(`
		CREATE allocation_run CONTENT {
			run_id: $run_id,
			ran_on: <datetime>$ran_on,
			tie_break: $tie_break,
			total_rank: $total_rank,
			fingerprint: $fingerprint,
			assigned_count: $assigned_count,
			unassigned: $unassigned,
			swap: IF $swap IS NOT NULL THEN $swap ELSE NONE END
		}`, map[string]interface{}{
		"run_id":         run.ID,
		"ran_on":         run.RanOn.UTC().Format(time.RFC3339Nano),
		"tie_break":      run.TieBreak,
		"total_rank":     run.TotalRank,
		"fingerprint":    run.Fingerprint,
		"assigned_count": run.AssignedCount(),
		"unassigned":     nonNil(run.Unassigned),
		"swap":           swapContent(run.Swap),
	})

	for _, a := range run.Assignments {
		batch.Add(`
			CREATE allocation_assignment CONTENT {
				run_id: $run_id,
				user_id: $user_id,
				score: $score,
				project_id: $project_id,
				preference_rank: $preference_rank,
				previous_preferences: $previous_preferences,
				swapped_with: IF $swapped_with IS NOT NULL THEN $swapped_with ELSE NONE END
			}`, map[string]interface{}{
			"run_id":               run.ID,
			"user_id":              a.UserID,
			"score":                a.Score,
			"project_id":           a.ProjectID,
			"preference_rank":      a.Rank,
			"previous_preferences": nonNil(a.RejectedBefore),
			"swapped_with":         nilIfEmpty(a.SwappedWith),
		})
	}

	return batch.Execute(ctx, r.db)
}

// Get retrieves a run with its assignments, ordered by user id
func (r *RunRepository) Get(ctx context.Context, runID string) (*model.AllocationRun, error) {
	query := `SELECT * FROM allocation_run WHERE run_id = $run_id LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"run_id": runID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	run := parseRun(data)

	query = `SELECT * FROM allocation_assignment WHERE run_id = $run_id ORDER BY user_id ASC`
	results, err := r.db.Query(ctx, query, map[string]interface{}{"run_id": runID})
	if err != nil {
		return nil, err
	}
	rows, _ := extractQueryResults(results)
	run.Assignments = make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			run.Assignments = append(run.Assignments, parseAssignment(m))
		}
	}
	return run, nil
}

// List returns the most recent runs first, without their assignments
func (r *RunRepository) List(ctx context.Context, limit int) ([]*model.AllocationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT * FROM allocation_run ORDER BY ran_on DESC LIMIT $limit`
	results, err := r.db.Query(ctx, query, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}

	rows, _ := extractQueryResults(results)
	runs := make([]*model.AllocationRun, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			runs = append(runs, parseRun(m))
		}
	}
	return runs, nil
}

func (r *RunRepository) exists(ctx context.Context, runID string) (bool, error) {
	query := `SELECT run_id FROM allocation_run WHERE run_id = $run_id LIMIT 1`
	_, err := r.db.QueryOne(ctx, query, map[string]interface{}{"run_id": runID})
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func parseRun(m map[string]interface{}) *model.AllocationRun {
	run := &model.AllocationRun{
		ID:          getString(m, "run_id"),
		RanOn:       parseTime(m["ran_on"]),
		TieBreak:    getString(m, "tie_break"),
		TotalRank:   getInt(m, "total_rank"),
		Fingerprint: getString(m, "fingerprint"),
		Unassigned:  getStringSlice(m, "unassigned"),
	}
	if s, ok := m["swap"].(map[string]interface{}); ok {
		run.Swap = &model.Swap{
			UserA:       getString(s, "user_a"),
			UserB:       getString(s, "user_b"),
			ProjectA:    getString(s, "project_a"),
			ProjectB:    getString(s, "project_b"),
			Improvement: getInt(s, "improvement"),
		}
	}
	return run
}

func parseAssignment(m map[string]interface{}) model.Assignment {
	return model.Assignment{
		UserID:         getString(m, "user_id"),
		Score:          getFloat(m, "score"),
		ProjectID:      getString(m, "project_id"),
		Rank:           getInt(m, "preference_rank"),
		RejectedBefore: getStringSlice(m, "previous_preferences"),
		SwappedWith:    getString(m, "swapped_with"),
	}
}

func swapContent(s *model.Swap) interface{} {
	if s == nil {
		return nil
	}
	return map[string]interface{}{
		"user_a":      s.UserA,
		"user_b":      s.UserB,
		"project_a":   s.ProjectA,
		"project_b":   s.ProjectB,
		"improvement": s.Improvement,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
