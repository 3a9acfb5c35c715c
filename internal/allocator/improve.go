package allocator

import (
	"cmp"
	"slices"

	"github.com/forgo/gradproj/internal/model"
)

// ImproveOnce searches every pair of assigned users for the exchange of
// projects that most lowers the pair's summed rank and applies it to a copy
// of result. Pairs are visited in user id order and the first of equally good
// exchanges wins. An exchange is only considered when both users ranked the
// project they would receive. The input result is never modified.
func ImproveOnce(result *model.Result, prefs model.Preferences) (*model.Result, *model.Swap, bool) {
	order := make([]int, len(result.Assignments))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(result.Assignments[a].UserID, result.Assignments[b].UserID)
	})

	var best *model.Swap
	var bestA, bestB int
	for x := 0; x < len(order); x++ {
		a := result.Assignments[order[x]]
		for y := x + 1; y < len(order); y++ {
			b := result.Assignments[order[y]]
			if a.ProjectID == b.ProjectID {
				continue
			}
			rankA := prefs.RankOf(a.UserID, b.ProjectID)
			rankB := prefs.RankOf(b.UserID, a.ProjectID)
			if rankA == 0 || rankB == 0 {
				continue
			}
			improvement := (a.Rank + b.Rank) - (rankA + rankB)
			if improvement > 0 && (best == nil || improvement > best.Improvement) {
				best = &model.Swap{
					UserA:       a.UserID,
					UserB:       b.UserID,
					ProjectA:    a.ProjectID,
					ProjectB:    b.ProjectID,
					Improvement: improvement,
				}
				bestA, bestB = order[x], order[y]
			}
		}
	}
	if best == nil {
		return result, nil, false
	}

	improved := result.Clone()
	reassign(&improved.Assignments[bestA], best.ProjectB, best.UserB, prefs)
	reassign(&improved.Assignments[bestB], best.ProjectA, best.UserA, prefs)
	return improved, best, true
}

// reassign moves an assignment to projectID; every project ranked above it
// counts as passed over
func reassign(a *model.Assignment, projectID, partner string, prefs model.Preferences) {
	rank := prefs.RankOf(a.UserID, projectID)
	a.ProjectID = projectID
	a.Rank = rank
	a.RejectedBefore = slices.Clone(prefs[a.UserID][:rank-1])
	if a.RejectedBefore == nil {
		a.RejectedBefore = []string{}
	}
	a.SwappedWith = partner
}

// TotalRank sums the preference ranks of all assignments; lower is better
func TotalRank(result *model.Result) int {
	total := 0
	for _, a := range result.Assignments {
		total += a.Rank
	}
	return total
}
