// Package database provides the SurrealDB connection used to archive
// allocation runs.
//
// The Database interface keeps the archive repository independent of the
// driver so that it can be exercised with an in-memory fake:
//
//   - Query: returns one {status, result} entry per statement
//   - QueryOne: returns the first record of the first statement
//   - Execute: runs a mutation and discards the result
//
// # Atomic Writes
//
// Archiving a run writes one allocation_run record and one
// allocation_assignment record per user. These go through AtomicBatch, which
// renders every statement into a single BEGIN TRANSACTION / COMMIT TRANSACTION
// block so that a partially archived run is never visible:
//
//	batch := database.NewAtomicBatch()
//	batch.Add("CREATE allocation_run CONTENT $run", map[string]interface{}{"run": run})
//	batch.Add("CREATE allocation_assignment CONTENT $row", map[string]interface{}{"row": row})
//	err := batch.Execute(ctx, db)
//
// Variables are namespaced per statement by TxBuilder, so two statements
// binding $row do not collide.
//
// # Errors
//
// ErrNotFound, ErrConnection and ErrQuery wrap the driver's errors; check
// them with errors.Is.
package database
