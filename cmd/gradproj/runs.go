package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgo/gradproj/internal/model"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List archived allocation runs, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Archive.Enabled = true
		if err := cfg.Validate(); err != nil {
			return err
		}

		repo, closeArchive, err := openArchive(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeArchive()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s: %w", args[0], errRunNotFound)
			}
			return printRun(out, run)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := repo.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return printRuns(out, runs)
	},
}

var errRunNotFound = errors.New("not archived")

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Number of runs to list")
}

func printRuns(w io.Writer, runs []*model.AllocationRun) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tRAN ON\tTIE BREAK\tTOTAL RANK\tUNASSIGNED\tSWAP")
	for _, r := range runs {
		swap := "-"
		if r.Swap != nil {
			swap = fmt.Sprintf("%s<->%s", r.Swap.UserA, r.Swap.UserB)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.RanOn.Format(time.RFC3339), r.TieBreak, r.TotalRank, r.UnassignedCount(), swap)
	}
	return tw.Flush()
}

func printRun(w io.Writer, r *model.AllocationRun) error {
	fmt.Fprintf(w, "run %s\nran on %s, tie break %s, total rank %d\nfingerprint %s\n\n",
		r.ID, r.RanOn.Format(time.RFC3339), r.TieBreak, r.TotalRank, r.Fingerprint)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tSCORE\tPROJECT\tRANK\tSKIPPED")
	for _, a := range r.Assignments {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%d\t%s\n",
			a.UserID, a.Score, a.ProjectID, a.Rank, strings.Join(a.RejectedBefore, ";"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Unassigned) > 0 {
		fmt.Fprintf(w, "\nunassigned: %s\n", strings.Join(r.Unassigned, ", "))
	}
	return nil
}
