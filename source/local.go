package source

import (
	"context"
	"io"
	"path/filepath"

	"github.com/hupe1980/nslscan/internal/mmap"
)

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// Absolute names passed to Open ignore the root.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open maps the named file into memory and returns a reader over it.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.root, name)
	}

	m, err := mmap.Open(p)
	if err != nil {
		return nil, err
	}
	// Input files are parsed front to back.
	_ = m.Advise(mmap.AccessSequential)

	return &localFile{SectionReader: io.NewSectionReader(m, 0, int64(m.Size())), m: m}, nil
}

type localFile struct {
	*io.SectionReader
	m *mmap.Mapping
}

func (f *localFile) Close() error {
	return f.m.Close()
}
