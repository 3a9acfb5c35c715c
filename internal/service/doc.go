// Package service implements the three gradproj batch jobs.
//
// Each service takes its dependencies through a Config struct and depends on
// small interfaces rather than concrete stores, so tests can run against
// in-memory fakes:
//
//   - AllocationService reads users, projects and preferences, runs the
//     greedy allocator (optionally followed by one swap-improvement pass),
//     writes assignment, roster, summary and unassigned tables and archives
//     the run when a RunRepository is configured
//   - TranscriptService scrapes every PDF in a directory concurrently and
//     writes one row per transcript
//   - SplitService writes one file per distinct value of a column
//
// # Error Handling
//
// Malformed input aborts an allocation with a *model.RecordError that wraps
// a model sentinel (ErrMalformedRecord, ErrDuplicateUser, ...). Batch jobs
// treat per-file failures as reportable outcomes: the file is logged and
// recorded, the remaining files are still processed. SplitService returns
// ErrPartialBatch joined with the individual write errors when any file
// failed.
//
// # Logging
//
// Services log through the *zap.Logger in their config and fall back to a
// no-op logger when none is given.
package service
