// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB gets a unique namespace with the archive migrations applied.
// When no server is reachable, or when tests run with -short, New skips the
// calling test instead of failing it:
//
//	func TestRunRepository_Create(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    repo := repository.NewRunRepository(tdb.DB)
//	}
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD, defaulting to a local root/root server on port 8000.
package testdb
