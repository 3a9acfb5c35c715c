package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gradproj/internal/model"
	"github.com/forgo/gradproj/internal/repository"
	"github.com/forgo/gradproj/internal/testing/fixtures"
	"github.com/forgo/gradproj/internal/testing/testdb"
)

func TestRunRepository_RoundTrip(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	repo := repository.NewRunRepository(tdb.DB)
	run := &model.AllocationRun{
		ID:          "run-roundtrip",
		RanOn:       time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		TieBreak:    model.TieBreakInput,
		TotalRank:   3,
		Fingerprint: "f00d",
		Swap:        &model.Swap{UserA: "A", UserB: "B", ProjectA: "P1", ProjectB: "P2", Improvement: 1},
		Assignments: []model.Assignment{
			{UserID: "B", Score: 3.5, ProjectID: "P1", Rank: 2, RejectedBefore: []string{"P2"}, SwappedWith: "A"},
			{UserID: "A", Score: 3.9, ProjectID: "P2", Rank: 1, RejectedBefore: []string{}, SwappedWith: "B"},
		},
		Unassigned: []string{"C"},
	}

	require.NoError(t, repo.Create(tdb.Ctx(), run))

	got, err := repo.Get(tdb.Ctx(), run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.TieBreak, got.TieBreak)
	assert.Equal(t, run.Fingerprint, got.Fingerprint)
	assert.True(t, run.RanOn.Equal(got.RanOn))
	assert.Equal(t, run.Swap, got.Swap)
	assert.Equal(t, []string{"C"}, got.Unassigned)
	require.Len(t, got.Assignments, 2)
	assert.Equal(t, "A", got.Assignments[0].UserID)
	assert.Equal(t, []string{"P2"}, got.Assignments[1].RejectedBefore)

	err = repo.Create(tdb.Ctx(), run)
	assert.ErrorIs(t, err, repository.ErrRunExists)
}

func TestRunRepository_List_NewestFirst(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		f.CreateRun(t, func(o *fixtures.RunOpts) {
			o.ID = id
			o.RanOn = base.Add(time.Duration(i) * time.Hour)
		})
	}

	runs, err := repository.NewRunRepository(tdb.DB).List(tdb.Ctx(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Empty(t, runs[0].Assignments)
}

func TestRunRepository_Get_Missing(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	run, err := repository.NewRunRepository(tdb.DB).Get(tdb.Ctx(), "nope")
	require.NoError(t, err)
	assert.Nil(t, run)
}
