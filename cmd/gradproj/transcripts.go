package main

import (
	"github.com/spf13/cobra"

	"github.com/forgo/gradproj/internal/jobs"
)

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Scrape cumulative fields from PDF transcripts into a spreadsheet",
	Long: `Reads every PDF in the transcripts directory, extracts the student id and the
final cumulative credit hours, course points, GPA, passed hours and training
weeks, and writes one row per transcript. Unreadable files are logged and
skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyTranscriptFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		svc, err := newTranscriptService(cfg)
		if err != nil {
			return err
		}
		return jobs.NewRunner(logger).Run(cmd.Context(), jobs.Transcripts(svc))
	},
}

func init() {
	fs := transcriptsCmd.Flags()
	fs.String("dir", "", "Directory containing transcripts")
	fs.String("ext", "", "Transcript file extension")
	fs.StringP("output", "o", "", "Output table (.csv or .xlsx)")
	fs.Int("workers", 0, "Concurrent extractions")
}

func applyTranscriptFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	t := &cfg.Transcripts
	overrideString(fs, "dir", &t.Dir)
	overrideString(fs, "ext", &t.Extension)
	overrideString(fs, "output", &t.OutputPath)
	overrideInt(fs, "workers", &t.Workers)
}
