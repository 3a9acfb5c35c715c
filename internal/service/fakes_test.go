package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/forgo/gradproj/internal/model"
	"github.com/forgo/gradproj/internal/table"
)

// ============================================================================
// Fakes
// ============================================================================

var errDisk = errors.New("disk full")

// memStore keeps tables and raw documents in memory
type memStore struct {
	mu        sync.Mutex
	tables    map[string]*table.Table
	docs      map[string][]byte
	written   []string
	failWrite map[string]bool
	dirs      []string
}

func newMemStore() *memStore {
	return &memStore{
		tables:    make(map[string]*table.Table),
		docs:      make(map[string][]byte),
		failWrite: make(map[string]bool),
	}
}

func (m *memStore) Read(ctx context.Context, location string) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[location]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: not found", location)
	}
	return t, nil
}

func (m *memStore) Write(ctx context.Context, location string, t *table.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for suffix := range m.failWrite {
		if strings.HasSuffix(location, suffix) {
			return fmt.Errorf("failed to write %s: %w", location, errDisk)
		}
	}
	m.tables[location] = t
	m.written = append(m.written, location)
	return nil
}

func (m *memStore) List(ctx context.Context, dir, ext string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var urls []string
	for name := range m.docs {
		if strings.HasPrefix(name, dir+"/") && strings.HasSuffix(name, ext) {
			urls = append(urls, name)
		}
	}
	sort.Strings(urls)
	return urls, nil
}

func (m *memStore) Download(ctx context.Context, location string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[location]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: not found", location)
	}
	return data, nil
}

func (m *memStore) EnsureDir(ctx context.Context, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs = append(m.dirs, dir)
	return nil
}

// textExtractor treats document bytes as text, failing on a marker
type textExtractor struct{}

func (textExtractor) ExtractText(data []byte) (string, error) {
	if strings.HasPrefix(string(data), "CORRUPT") {
		return "", errors.New("failed to open pdf: malformed xref")
	}
	return string(data), nil
}

// mockRunRepo records archived runs
type mockRunRepo struct {
	createFunc func(ctx context.Context, run *model.AllocationRun) error
	created    []*model.AllocationRun
}

func (m *mockRunRepo) Create(ctx context.Context, run *model.AllocationRun) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, run); err != nil {
			return err
		}
	}
	m.created = append(m.created, run)
	return nil
}

// tableOf builds a table from a header and rows
func tableOf(header []string, rows ...[]string) *table.Table {
	t := table.New(header...)
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}
