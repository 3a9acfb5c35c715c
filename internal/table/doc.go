// Package table provides the tabular model shared by every gradproj job.
//
// A Table is a header row plus string cells. Codecs exist for CSV and XLSX,
// and Store reads and writes tables through viant/afs so the same code path
// serves local files, in-memory storage in tests, and remote object stores.
// The codec is chosen by file extension:
//
//	store := table.NewStore(afs.New())
//	users, err := store.Read(ctx, "input/users.csv")
//	err = store.Write(ctx, "out/assignments.xlsx", users)
package table
