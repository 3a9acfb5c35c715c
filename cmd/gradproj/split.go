package main

import (
	"github.com/spf13/cobra"

	"github.com/forgo/gradproj/internal/jobs"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Write one spreadsheet per value of a column",
	Long: `Groups the rows of the input table by the trimmed value of a column and writes
each group, with the original header, to its own file in the output
directory. File names are derived from the value with path separators and
other unsafe characters replaced by underscores.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applySplitFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		svc, err := newSplitService(cfg)
		if err != nil {
			return err
		}
		return jobs.NewRunner(logger).Run(cmd.Context(), jobs.Split(svc))
	},
}

func init() {
	fs := splitCmd.Flags()
	fs.StringP("input", "i", "", "Table to split")
	fs.String("column", "", "Grouping column")
	fs.StringP("output-dir", "o", "", "Directory for the per-group files")
	fs.String("format", "", "Output format: xlsx or csv")
	fs.String("sheet", "", "Worksheet to read and write")
}

func applySplitFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	s := &cfg.Split
	overrideString(fs, "input", &s.InputPath)
	overrideString(fs, "column", &s.Column)
	overrideString(fs, "output-dir", &s.OutputDir)
	overrideString(fs, "format", &s.Format)
	overrideString(fs, "sheet", &s.Sheet)
}
