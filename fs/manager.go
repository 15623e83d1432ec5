package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drafterhq/drafter/blueprint"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// FileSystem wraps the Afero Fs interface
type FileSystem struct {
	Fs afero.Fs
}

// NewMemoryFileSystem creates a new in-memory file system
func NewMemoryFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOsFileSystem creates a new OS-based file system
func NewOsFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewOsFs(),
	}
}

// MaterializeOptions control how a blueprint is written to disk.
type MaterializeOptions struct {
	// FailIfExists refuses to overwrite an existing file instead of
	// replacing its content.
	FailIfExists bool
}

// Materialize writes the blueprint under root. Directory entries are created
// first, in order, so parents exist before children; file writes then run
// concurrently since entry paths are validated distinct.
func (fs *FileSystem) Materialize(bp blueprint.Blueprint, root string, opts MaterializeOptions) error {
	if err := bp.Validate(); err != nil {
		return err
	}
	if err := fs.EnsureDir(root); err != nil {
		return fmt.Errorf("error creating destination root %s: %w", root, err)
	}

	for _, e := range bp {
		if e.Type != blueprint.EntryDirectory {
			continue
		}
		dir := filepath.Join(root, relPath(e.Path))
		if err := fs.Fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	var g errgroup.Group
	for _, e := range bp {
		if e.Type != blueprint.EntryFile {
			continue
		}
		e := e
		g.Go(func() error {
			dst := filepath.Join(root, relPath(e.Path))
			if opts.FailIfExists && fs.FileExists(dst) {
				return fmt.Errorf("destination file %s already exists: %w", dst, os.ErrExist)
			}
			return fs.WriteFile(dst, e.Content)
		})
	}
	return g.Wait()
}

// MaterializeAll writes the blueprint under each of the given roots.
func (fs *FileSystem) MaterializeAll(bp blueprint.Blueprint, roots []string, opts MaterializeOptions) error {
	for _, root := range roots {
		if err := fs.Materialize(bp, root, opts); err != nil {
			return err
		}
	}
	return nil
}

func relPath(p string) string {
	return strings.TrimPrefix(p, "./")
}

// WriteFile creates a new file with the given content or overwrites an
// existing file with the content, creating parent directories as needed.
func (fs *FileSystem) WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := fs.Fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(fs.Fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing file %s: %w", path, err)
	}
	return nil
}

// EnsureDir ensures that the specified directory exists
func (fs *FileSystem) EnsureDir(dir string) error {
	return fs.Fs.MkdirAll(dir, 0755)
}

// FileExists checks if a file exists
func (fs *FileSystem) FileExists(path string) bool {
	_, err := fs.Fs.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func (fs *FileSystem) IsDir(path string) bool {
	info, err := fs.Fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ListFiles returns the tree under root as nested maps, directories mapping
// to their children and files mapping to nil.
func (fs *FileSystem) ListFiles(root string) (map[string]interface{}, error) {
	structure := make(map[string]interface{})
	err := afero.Walk(fs.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		node := structure
		parts := strings.Split(filepath.ToSlash(rel), "/")
		for i, part := range parts {
			last := i == len(parts)-1
			if last && !info.IsDir() {
				node[part] = nil
				break
			}
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing files under %s: %w", root, err)
	}
	return structure, nil
}
