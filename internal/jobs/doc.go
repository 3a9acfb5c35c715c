// Package jobs runs the gradproj batch jobs.
//
// Every subcommand, and the pipeline, is executed as a list of named jobs
// handed to a Runner. The runner executes them in order, logs start, finish
// and duration for each one, and stops at the first failure:
//
//	runner := jobs.NewRunner(logger)
//	err := runner.Run(ctx,
//	    jobs.Transcripts(transcriptService),
//	    jobs.Allocate(allocationService),
//	    jobs.Split(splitService),
//	)
//
// A Runner refuses to start while it is already running.
package jobs
