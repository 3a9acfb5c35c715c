// Package repository implements the allocation archive on SurrealDB.
//
// RunRepository stores one allocation_run record per allocate invocation and
// one allocation_assignment record per assigned user, keyed by run_id. The
// run and its assignments are written in a single database.AtomicBatch, so a
// reader never observes a run without its assignments.
//
// Repositories accept a database.Database, which lets the service layer be
// tested against an in-memory fake and the repository itself against a real
// server through internal/testing/testdb.
//
//	repo := repository.NewRunRepository(db)
//	if err := repo.Create(ctx, run); err != nil {
//	    return err
//	}
//	latest, err := repo.List(ctx, 1)
package repository
