package main

import (
	"github.com/spf13/cobra"

	"github.com/forgo/gradproj/internal/jobs"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Assign project slots by score and ranked preferences",
	Long: `Processes users in descending score order and grants each the best-ranked
project that still has capacity. Users whose preferences are all full are
reported as unassigned.

Writes the assignments table, and the rosters, summary and unassigned tables
when their paths are set. With --improve-once a single pairwise swap pass is
applied afterwards. With --archive the run is stored in SurrealDB.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyAllocationFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		runs, closeArchive, err := openArchive(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeArchive()

		svc, err := newAllocationService(cfg, runs)
		if err != nil {
			return err
		}
		return jobs.NewRunner(logger).Run(cmd.Context(), jobs.Allocate(svc))
	},
}

func init() {
	fs := allocateCmd.Flags()
	fs.String("users", "", "Users table (user id, score)")
	fs.String("projects", "", "Projects table (project id, capacity)")
	fs.String("preferences", "", "Preferences table (user id, ranked project columns)")
	fs.String("assignments", "", "Assignments output table")
	fs.String("rosters", "", "Rosters output table")
	fs.String("summary", "", "Per-project summary output table")
	fs.String("unassigned", "", "Unassigned users output table")
	fs.String("user-id-column", "", "User id column name")
	fs.String("score-column", "", "Score column name")
	fs.String("project-id-column", "", "Project id column name")
	fs.String("capacity-column", "", "Capacity column name")
	fs.String("tie-break", "", "Order of equal scores: id or input")
	fs.Bool("improve-once", false, "Apply one pairwise swap improvement pass")
	fs.Bool("skip-incomplete", false, `Drop users whose id or score is "Not Found"`)
	fs.Bool("archive", false, "Archive the run in SurrealDB")
}

func applyAllocationFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	a := &cfg.Allocation
	overrideString(fs, "users", &a.UsersPath)
	overrideString(fs, "projects", &a.ProjectsPath)
	overrideString(fs, "preferences", &a.PreferencesPath)
	overrideString(fs, "assignments", &a.AssignmentsPath)
	overrideString(fs, "rosters", &a.RostersPath)
	overrideString(fs, "summary", &a.SummaryPath)
	overrideString(fs, "unassigned", &a.UnassignedPath)
	overrideString(fs, "user-id-column", &a.UserIDColumn)
	overrideString(fs, "score-column", &a.ScoreColumn)
	overrideString(fs, "project-id-column", &a.ProjectIDColumn)
	overrideString(fs, "capacity-column", &a.CapacityColumn)
	overrideString(fs, "tie-break", &a.TieBreak)
	overrideBool(fs, "improve-once", &a.ImproveOnce)
	overrideBool(fs, "skip-incomplete", &a.SkipIncomplete)
	overrideBool(fs, "archive", &cfg.Archive.Enabled)
}
