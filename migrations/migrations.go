// Package migrations embeds the SurrealQL schema for the allocation archive.
//
// Files are applied in lexical order. Every statement uses IF NOT EXISTS so
// Apply can run before each archive write.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/forgo/gradproj/internal/database"
)

//go:embed *.surql
var files embed.FS

// Load returns the migration scripts in application order
func Load() ([]string, error) {
	names, err := fs.Glob(files, "*.surql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		scripts = append(scripts, string(data))
	}
	return scripts, nil
}

// Apply checks the connection, then executes every migration against db
func Apply(ctx context.Context, db database.Database) error {
	scripts, err := Load()
	if err != nil {
		return err
	}
	if err := db.Ping(ctx); err != nil {
		return err
	}
	for i, script := range scripts {
		if err := db.Execute(ctx, script, nil); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
