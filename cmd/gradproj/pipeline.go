package main

import (
	"github.com/spf13/cobra"

	"github.com/forgo/gradproj/internal/jobs"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run transcripts, allocate and split in order",
	Long: `Runs the three jobs with the loaded configuration, stopping at the first
failure.

With --chain the steps feed each other: the allocation reads users from the
transcripts output (scored by cumulative_GPA) and split reads the
assignments table. Transcripts whose student id or GPA was not found are
logged and left out of the allocation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, _ := cmd.Flags().GetBool("chain")
		if chain {
			chainPipeline()
		}
		overrideBool(cmd.Flags(), "archive", &cfg.Archive.Enabled)
		if err := cfg.Validate(); err != nil {
			return err
		}

		transcripts, err := newTranscriptService(cfg)
		if err != nil {
			return err
		}
		runs, closeArchive, err := openArchive(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeArchive()
		allocation, err := newAllocationService(cfg, runs)
		if err != nil {
			return err
		}
		split, err := newSplitService(cfg)
		if err != nil {
			return err
		}

		return jobs.NewRunner(logger).Run(cmd.Context(),
			jobs.Transcripts(transcripts),
			jobs.Allocate(allocation),
			jobs.Split(split),
		)
	},
}

func init() {
	pipelineCmd.Flags().Bool("chain", false, "Feed each step's output into the next")
	pipelineCmd.Flags().Bool("archive", false, "Archive the allocation run in SurrealDB")
}

// chainPipeline points each step's input at the previous step's output
func chainPipeline() {
	cfg.Allocation.UsersPath = cfg.Transcripts.OutputPath
	cfg.Allocation.ScoreColumn = "cumulative_GPA"
	cfg.Allocation.SkipIncomplete = true
	cfg.Split.InputPath = cfg.Allocation.AssignmentsPath
}
