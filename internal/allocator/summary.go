package allocator

import "github.com/forgo/gradproj/internal/model"

// Rosters groups assigned users by project, in project input order.
// Users keep their processing order within a roster.
func Rosters(result *model.Result, projects []model.Project) []model.ProjectRoster {
	byProject := make(map[string][]string, len(projects))
	for _, a := range result.Assignments {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a.UserID)
	}

	rosters := make([]model.ProjectRoster, 0, len(projects))
	for _, p := range projects {
		users := byProject[p.ID]
		if users == nil {
			users = []string{}
		}
		rosters = append(rosters, model.ProjectRoster{ProjectID: p.ID, UserIDs: users})
	}
	return rosters
}

// Summaries reports per-project fill and mean score of the assigned users
func Summaries(result *model.Result, projects []model.Project) []model.ProjectSummary {
	type acc struct {
		count int
		sum   float64
	}
	totals := make(map[string]*acc, len(projects))
	for _, a := range result.Assignments {
		t, ok := totals[a.ProjectID]
		if !ok {
			t = &acc{}
			totals[a.ProjectID] = t
		}
		t.count++
		t.sum += a.Score
	}

	summaries := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		s := model.ProjectSummary{
			ProjectID: p.ID,
			Capacity:  p.Capacity,
			Remaining: p.Capacity,
		}
		if t, ok := totals[p.ID]; ok {
			s.Assigned = t.count
			s.Remaining = p.Capacity - t.count
			s.MeanScore = t.sum / float64(t.count)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
