package allocator

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/forgo/gradproj/internal/model"
)

// Options tune an allocation pass
type Options struct {
	// TieBreak orders users with equal scores; defaults to model.TieBreakID
	TieBreak string
}

// Rule returns the tie-break rule in effect
func (o Options) Rule() string {
	if o.TieBreak == "" {
		return model.TieBreakID
	}
	return o.TieBreak
}

// Allocate runs the greedy preference allocation.
// Invalid input aborts the pass with an error wrapping one of the model sentinels.
func Allocate(users []model.User, projects []model.Project, prefs model.Preferences, opts Options) (*model.Result, error) {
	tieBreak := opts.Rule()
	if tieBreak != model.TieBreakID && tieBreak != model.TieBreakInput {
		return nil, fmt.Errorf("unsupported tie-break rule %q", tieBreak)
	}
	if err := validate(users, projects, prefs); err != nil {
		return nil, err
	}

	remaining := make(map[string]int, len(projects))
	for _, p := range projects {
		remaining[p.ID] = p.Capacity
	}

	result := &model.Result{
		Assignments: make([]model.Assignment, 0, len(users)),
		Unassigned:  []string{},
		Remaining:   remaining,
	}

	for _, u := range ProcessingOrder(users, tieBreak) {
		rejected := []string{}
		assigned := false
		for i, projectID := range prefs[u.ID] {
			if remaining[projectID] > 0 {
				remaining[projectID]--
				result.Assignments = append(result.Assignments, model.Assignment{
					UserID:         u.ID,
					Score:          u.Score,
					ProjectID:      projectID,
					Rank:           i + 1,
					RejectedBefore: rejected,
				})
				assigned = true
				break
			}
			rejected = append(rejected, projectID)
		}
		if !assigned {
			result.Unassigned = append(result.Unassigned, u.ID)
		}
	}

	return result, nil
}

// ProcessingOrder returns a copy of users sorted by score descending,
// with equal scores ordered by the tie-break rule
func ProcessingOrder(users []model.User, tieBreak string) []model.User {
	ordered := slices.Clone(users)
	slices.SortStableFunc(ordered, func(a, b model.User) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if tieBreak == model.TieBreakInput {
			return 0
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ordered
}

// validate checks preconditions in a fixed order so the reported error is stable
func validate(users []model.User, projects []model.Project, prefs model.Preferences) error {
	userIDs := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.ID == "" {
			return fmt.Errorf("%w: empty user id", model.ErrMalformedRecord)
		}
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("%w: %s", model.ErrDuplicateUser, u.ID)
		}
		if math.IsNaN(u.Score) || math.IsInf(u.Score, 0) {
			return fmt.Errorf("%w: user %s has score %v", model.ErrInvalidScore, u.ID, u.Score)
		}
		userIDs[u.ID] = struct{}{}
	}

	projectIDs := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if p.ID == "" {
			return fmt.Errorf("%w: empty project id", model.ErrMalformedRecord)
		}
		if _, dup := projectIDs[p.ID]; dup {
			return fmt.Errorf("%w: %s", model.ErrDuplicateProject, p.ID)
		}
		if p.Capacity < 0 {
			return fmt.Errorf("%w: project %s has capacity %d", model.ErrNegativeCapacity, p.ID, p.Capacity)
		}
		projectIDs[p.ID] = struct{}{}
	}

	prefUsers := make([]string, 0, len(prefs))
	for userID := range prefs {
		prefUsers = append(prefUsers, userID)
	}
	sort.Strings(prefUsers)

	for _, userID := range prefUsers {
		if _, ok := userIDs[userID]; !ok {
			return fmt.Errorf("%w: preferences given for %s", model.ErrUnknownUser, userID)
		}
		seen := make(map[string]struct{}, len(prefs[userID]))
		for _, projectID := range prefs[userID] {
			if _, ok := projectIDs[projectID]; !ok {
				return fmt.Errorf("%w: %s ranked by user %s", model.ErrUnknownProject, projectID, userID)
			}
			if _, dup := seen[projectID]; dup {
				return fmt.Errorf("%w: %s by user %s", model.ErrDuplicatePreference, projectID, userID)
			}
			seen[projectID] = struct{}{}
		}
	}
	return nil
}
