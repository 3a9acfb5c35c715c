package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDB captures the last query sent through Query
type recordingDB struct {
	query string
	vars  map[string]interface{}
	calls int
	err   error
}

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.calls++
	r.query = query
	r.vars = vars
	return nil, r.err
}

func (r *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	return nil, ErrNotFound
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	m1 := tb.Add("CREATE allocation_assignment CONTENT $row", map[string]interface{}{"row": 1})
	m2 := tb.Add("CREATE allocation_assignment CONTENT $row", map[string]interface{}{"row": 2})

	query, vars := tb.Build()
	assert.Equal(t, "v1_row", m1["row"])
	assert.Equal(t, "v2_row", m2["row"])
	assert.Equal(t, "BEGIN TRANSACTION;\n"+
		"CREATE allocation_assignment CONTENT $v1_row;\n"+
		"CREATE allocation_assignment CONTENT $v2_row;\n"+
		"COMMIT TRANSACTION;", query)
	assert.Equal(t, map[string]interface{}{"v1_row": 1, "v2_row": 2}, vars)
}

func TestTxBuilder_PrefixVariablesDoNotCollide(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	tb.Add("UPDATE $run SET run_id = $run_id", map[string]interface{}{"run": "a", "run_id": "b"})

	query, vars := tb.Build()
	assert.Contains(t, query, "UPDATE $v1_run SET run_id = $v2_run_id;")
	assert.Equal(t, "a", vars["v1_run"])
	assert.Equal(t, "b", vars["v2_run_id"])
}

func TestTxBuilder_UnknownVariableLeftAlone(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	tb.Add("SELECT * FROM allocation_run WHERE id = $id AND ran_on < $now", map[string]interface{}{"id": "x"})

	query, _ := tb.Build()
	assert.Contains(t, query, "$v1_id")
	assert.Contains(t, query, "$now")
}

func TestTxBuilder_Empty(t *testing.T) {
	t.Parallel()

	query, vars := NewTxBuilder().Build()
	assert.Empty(t, query)
	assert.Nil(t, vars)
}

func TestAtomicBatch_Execute(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	batch := NewAtomicBatch().
		Add("CREATE allocation_run CONTENT $run", map[string]interface{}{"run": "r"}).
		Add("CREATE allocation_assignment CONTENT $row", map[string]interface{}{"row": "a"})

	require.NoError(t, batch.Execute(context.Background(), db))
	assert.Equal(t, 1, db.calls)
	assert.Contains(t, db.query, "BEGIN TRANSACTION;")
	assert.Contains(t, db.query, "CREATE allocation_run CONTENT $v1_run;")
	assert.Contains(t, db.query, "CREATE allocation_assignment CONTENT $v2_row;")
	assert.Len(t, db.vars, 2)
}

func TestAtomicBatch_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	require.NoError(t, NewAtomicBatch().Execute(context.Background(), db))
	assert.Zero(t, db.calls)
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	t.Parallel()

	db := &recordingDB{err: ErrQuery}
	err := NewAtomicBatch().Add("CREATE x", nil).Execute(context.Background(), db)
	assert.True(t, errors.Is(err, ErrQuery))
}

func TestFirstRecord(t *testing.T) {
	t.Parallel()

	rec := map[string]interface{}{"run_id": "r1"}
	got, err := FirstRecord([]interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{rec}},
	})
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = FirstRecord([]interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FirstRecord(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = FirstRecord([]interface{}{
		map[string]interface{}{"status": "OK", "result": float64(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)
}
