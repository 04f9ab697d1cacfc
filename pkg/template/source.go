package template

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Source opens template content by name.
// The caller is responsible for closing the returned reader.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Dir returns a Source reading files relative to root.
// An empty root resolves names against the working directory.
func Dir(root string) Source {
	return dirSource(root)
}

type dirSource string

func (d dirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path := name
	if d != "" && !filepath.IsAbs(name) {
		path = filepath.Join(string(d), name)
	}
	return os.Open(path)
}

// FS returns a Source backed by an fs.FS.
func FS(fsys fs.FS) Source {
	return fsSource{fsys: fsys}
}

type fsSource struct {
	fsys fs.FS
}

func (s fsSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return s.fsys.Open(name)
}

// Load reads the template at path from the local filesystem.
func Load(path string) (*Template, error) {
	return LoadFrom(context.Background(), Dir(""), path)
}

// LoadFS reads the named template from fsys.
func LoadFS(fsys fs.FS, name string) (*Template, error) {
	return LoadFrom(context.Background(), FS(fsys), name)
}

// LoadFrom reads the named template from src.
// The whole content is read into memory.
func LoadFrom(ctx context.Context, src Source, name string) (*Template, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrNoSource)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %s: nil source", ErrLoad, name)
	}

	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}

	return Parse(string(content)), nil
}
