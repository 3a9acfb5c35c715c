// Package splitter partitions a table into one table per value of a column.
package splitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgo/gradproj/internal/table"
)

// Group is the subset of rows sharing one value of the split column
type Group struct {
	Value string
	Table *table.Table
}

// Split groups rows by the trimmed value of column. Groups are sorted by
// value and keep the original row order; rows with a blank value are skipped
// and counted.
func Split(t *table.Table, column string) ([]Group, int, error) {
	idx, err := t.Column(column)
	if err != nil {
		return nil, 0, err
	}

	byValue := make(map[string]*table.Table)
	blank := 0
	for _, row := range t.Rows {
		value := table.Cell(row, idx)
		if value == "" {
			blank++
			continue
		}
		g, ok := byValue[value]
		if !ok {
			g = table.New(t.Header...)
			byValue[value] = g
		}
		g.Rows = append(g.Rows, row)
	}

	values := make([]string, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Strings(values)

	groups := make([]Group, 0, len(values))
	for _, v := range values {
		groups = append(groups, Group{Value: v, Table: byValue[v]})
	}
	return groups, blank, nil
}

var unsafeChars = strings.NewReplacer(
	"/", "_",
	`\`, "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SafeFilename turns a group value into a file name stem
func SafeFilename(value string) string {
	name := strings.TrimSpace(unsafeChars.Replace(value))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// Plan assigns each group a distinct file name with the given extension.
// Values that sanitise to the same stem get -2, -3, ... suffixes in order.
func Plan(groups []Group, ext string) []string {
	names := make([]string, len(groups))
	used := make(map[string]bool, len(groups))
	for i, g := range groups {
		stem := SafeFilename(g.Value)
		name := stem + ext
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
