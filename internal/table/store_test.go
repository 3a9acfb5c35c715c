package table

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestStore_WriteReadCSV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(afs.New())

	tbl := New("user_id", "score")
	tbl.Append("A", "90")

	target := filepath.Join(dir, "nested", "users.csv")
	require.NoError(t, store.Write(ctx, target, tbl))

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "user_id,score\nA,90\n", string(raw))

	back, err := store.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, tbl, back)
}

func TestStore_WriteReadXLSX(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(afs.New(), WithSheet("Final"))

	tbl := New("project_id", "capacity")
	tbl.Append("P1", "3")

	target := filepath.Join(t.TempDir(), "projects.xlsx")
	require.NoError(t, store.Write(ctx, target, tbl))

	back, err := store.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, back.Rows)
}

func TestStore_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(afs.New())
	target := filepath.Join(t.TempDir(), "users.json")

	err := store.Write(ctx, target, New("a"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))
	_, err = store.Read(ctx, target)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStore_ReadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(afs.New())
	_, err := store.Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestStore_ListFiltersAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))

	urls, err := NewStore(afs.New()).List(context.Background(), dir, ".pdf")
	require.NoError(t, err)

	require.Len(t, urls, 2)
	assert.Equal(t, "a.PDF", filepath.Base(urls[0]))
	assert.Equal(t, "b.pdf", filepath.Base(urls[1]))
}

func TestExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".xlsx", Ext("out/Final Distribution.XLSX"))
	assert.Equal(t, "", Ext("parsed_transcripts"))
}
