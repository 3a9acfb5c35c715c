package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gradproj/internal/table"
)

func distribution() *table.Table {
	t := table.New("user_id", "Assigned Project")
	t.Append("2001", "Robotics")
	t.Append("2002", "AI/ML")
	t.Append("2003", "Robotics")
	t.Append("2004", "  ")
	t.Append("2005", "AI:ML")
	return t
}

func TestSplit_GroupsSortedAndOrdered(t *testing.T) {
	t.Parallel()

	groups, blank, err := Split(distribution(), "assigned project")
	require.NoError(t, err)

	assert.Equal(t, 1, blank)
	require.Len(t, groups, 3)
	assert.Equal(t, "AI/ML", groups[0].Value)
	assert.Equal(t, "AI:ML", groups[1].Value)
	assert.Equal(t, "Robotics", groups[2].Value)

	assert.Equal(t, [][]string{{"2001", "Robotics"}, {"2003", "Robotics"}}, groups[2].Table.Rows)
	assert.Equal(t, []string{"user_id", "Assigned Project"}, groups[2].Table.Header)
}

func TestSplit_MissingColumn(t *testing.T) {
	t.Parallel()

	_, _, err := Split(distribution(), "department")
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestSafeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Robotics", "Robotics"},
		{`a/b\c:d`, "a_b_c_d"},
		{`what?*"<>|`, "what______"},
		{"  ", "_"},
		{"..", "_"},
		{"42", "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFilename(tt.in), "input %q", tt.in)
	}
}

func TestPlan_DeduplicatesCollisions(t *testing.T) {
	t.Parallel()

	groups, _, err := Split(distribution(), "Assigned Project")
	require.NoError(t, err)

	names := Plan(groups, ".xlsx")
	assert.Equal(t, []string{"AI_ML.xlsx", "AI_ML-2.xlsx", "Robotics.xlsx"}, names)
}
