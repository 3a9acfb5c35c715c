package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/model"
)

// execute runs the root command; commands share global state so these tests
// are not parallel
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gradproj dev ("), out)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"transcripts", "allocate", "split", "pipeline", "runs", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestAllocateCommand_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	users := writeFile(t, dir, "users.csv", "user_id,gpa\nA,3.9\nB,3.5\nC,3.1\n")
	projects := writeFile(t, dir, "projects.csv", "project_id,capacity\nP1,1\nP2,1\n")
	prefs := writeFile(t, dir, "prefs.csv", "user_id,first,second\nA,P1,P2\nB,P1,P2\nC,P2,P1\n")
	assignments := filepath.Join(dir, "out", "assignments.csv")

	_, err := execute(t, "allocate",
		"--users", users,
		"--projects", projects,
		"--preferences", prefs,
		"--score-column", "gpa",
		"--assignments", assignments,
		"--rosters", filepath.Join(dir, "out", "rosters.csv"),
		"--summary", filepath.Join(dir, "out", "summary.csv"),
		"--unassigned", filepath.Join(dir, "out", "unassigned.csv"),
	)
	require.NoError(t, err)

	data, err := os.ReadFile(assignments)
	require.NoError(t, err)
	assert.Contains(t, string(data), "B,3.5,P2,2,P1")

	unassigned, err := os.ReadFile(filepath.Join(dir, "out", "unassigned.csv"))
	require.NoError(t, err)
	assert.Equal(t, "user_id,score\nC,3.1\n", string(unassigned))
}

func TestAllocateCommand_InvalidTieBreak(t *testing.T) {
	_, err := execute(t, "allocate", "--tie-break", "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOCATION_TIE_BREAK")
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, []*model.AllocationRun{
		{
			ID:         "r1",
			RanOn:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			TieBreak:   "id",
			TotalRank:  3,
			Unassigned: []string{"C"},
			Swap:       &model.Swap{UserA: "A", UserB: "B"},
		},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"RUN", "RAN", "ON", "TIE", "BREAK", "TOTAL", "RANK", "UNASSIGNED", "SWAP"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"r1", "2026-09-01T08:00:00Z", "id", "3", "1", "A<->B"}, strings.Fields(lines[1]))
}

func TestChainPipeline(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = newDefaultConfig(t)
	chainPipeline()
	assert.Equal(t, cfg.Transcripts.OutputPath, cfg.Allocation.UsersPath)
	assert.Equal(t, "cumulative_GPA", cfg.Allocation.ScoreColumn)
	assert.True(t, cfg.Allocation.SkipIncomplete)
	assert.Equal(t, cfg.Allocation.AssignmentsPath, cfg.Split.InputPath)
}

func newDefaultConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Default()
}
