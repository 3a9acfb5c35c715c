package table

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
)

// Store reads and writes tables and raw documents through afs
type Store struct {
	fs    afs.Service
	sheet string
}

// StoreOption customises a Store
type StoreOption func(*Store)

// WithSheet selects the worksheet used for XLSX reads and writes
func WithSheet(sheet string) StoreOption {
	return func(s *Store) {
		s.sheet = sheet
	}
}

// NewStore creates a table store backed by fs
func NewStore(fs afs.Service, opts ...StoreOption) *Store {
	s := &Store{fs: fs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location normalises a plain path or URL into an afs URL
func Location(location string) string {
	return url.Normalize(location, file.Scheme)
}

// Join appends a file name to a directory location
func Join(dir, name string) string {
	return url.Join(Location(dir), name)
}

// Ext returns the lower-cased extension of a location
func Ext(location string) string {
	return strings.ToLower(path.Ext(location))
}

// Read loads a table, choosing the codec by extension
func (s *Store) Read(ctx context.Context, location string) (*Table, error) {
	data, err := s.Download(ctx, location)
	if err != nil {
		return nil, err
	}

	var t *Table
	switch Ext(location) {
	case ".csv":
		t, err = ParseCSV(data)
	case ".xlsx", ".xlsm":
		t, err = ParseXLSX(data, s.sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, location)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return t, nil
}

// Write stores a table, choosing the codec by extension
func (s *Store) Write(ctx context.Context, location string, t *Table) error {
	var data []byte
	var err error
	switch Ext(location) {
	case ".csv":
		data, err = EncodeCSV(t)
	case ".xlsx", ".xlsm":
		data, err = EncodeXLSX(t, s.sheet)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, location)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", location, err)
	}

	target := Location(location)
	parent, _ := url.Split(target, file.Scheme)
	if err := s.EnsureDir(ctx, parent); err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// Download returns the raw bytes of a document
func (s *Store) Download(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, Location(location))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// List returns the URLs of files directly under dir whose extension matches
// ext (case-insensitively), sorted
func (s *Store) List(ctx context.Context, dir, ext string) ([]string, error) {
	objects, err := s.fs.List(ctx, Location(dir), option.NewRecursive(false))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	ext = strings.ToLower(ext)
	var urls []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if ext != "" && Ext(object.Name()) != ext {
			continue
		}
		urls = append(urls, object.URL())
	}
	sort.Strings(urls)
	return urls, nil
}

// EnsureDir creates a directory unless it already exists
func (s *Store) EnsureDir(ctx context.Context, dir string) error {
	dir = Location(dir)
	exists, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err := s.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
