// Package model defines the records shared by the gradproj jobs.
//
// Allocation inputs are User, Project and Preferences; a pass produces a
// Result of Assignment values plus the ids left Unassigned. AllocationRun is
// the archived form of a Result, and Swap records the exchange applied by an
// improvement pass.
//
// Transcript and TranscriptBatch carry the fields scraped from PDF
// transcripts. SplitReport describes the files written when a table is split
// by a column. FileFailure is shared by both batch jobs.
//
// # Errors
//
// Input validation failures are sentinel errors wrapped in a RecordError that
// names the table, row and column:
//
//	var rerr *model.RecordError
//	if errors.As(err, &rerr) && errors.Is(err, model.ErrInvalidScore) {
//	    fmt.Println(rerr.Row)
//	}
package model
