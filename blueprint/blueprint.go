package blueprint

import (
	"fmt"
	"strings"
)

// NamePlaceholder is the token the model is instructed to emit wherever the
// instance name belongs. Substitute replaces it in paths and file contents.
const NamePlaceholder = "{{name}}"

// EntryType tags a blueprint entry as a file or a directory.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry is a single record of the file-tree description returned by the
// model: a repo-root-relative path, a type tag, and content for files.
type Entry struct {
	Path    string    `json:"path"`
	Type    EntryType `json:"type"`
	Content string    `json:"content,omitempty"`
}

// Blueprint is the ordered file-tree description. It is transient: decoded
// from a single completion and materialized once.
type Blueprint []Entry

// Validate checks path well-formedness and the type tag.
func (e Entry) Validate() error {
	switch e.Type {
	case EntryFile, EntryDirectory:
	default:
		return fmt.Errorf("entry %q: unknown type %q", e.Path, e.Type)
	}
	if e.Type == EntryDirectory && e.Content != "" {
		return fmt.Errorf("entry %q: directory entries cannot carry content", e.Path)
	}
	return validatePath(e.Path)
}

func validatePath(p string) error {
	if !strings.HasPrefix(p, "./") {
		return fmt.Errorf("path %q must start with %q", p, "./")
	}
	if p == "./" {
		return fmt.Errorf("path %q does not name an entry", p)
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("path %q contains a backslash", p)
	}
	for _, seg := range strings.Split(p[2:], "/") {
		if seg == "" {
			return fmt.Errorf("path %q contains an empty segment", p)
		}
		if seg == ".." {
			return fmt.Errorf("path %q escapes the destination root", p)
		}
	}
	return nil
}

// Validate checks every entry and rejects duplicate paths.
func (b Blueprint) Validate() error {
	seen := make(map[string]struct{}, len(b))
	for _, e := range b {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, ok := seen[e.Path]; ok {
			return fmt.Errorf("duplicate path %q", e.Path)
		}
		seen[e.Path] = struct{}{}
	}
	return nil
}

// Substitute returns a copy of the blueprint with every NamePlaceholder in
// paths and file contents replaced by name. An empty name returns the
// blueprint unchanged.
func (b Blueprint) Substitute(name string) Blueprint {
	if name == "" {
		return b
	}
	out := make(Blueprint, len(b))
	for i, e := range b {
		e.Path = strings.ReplaceAll(e.Path, NamePlaceholder, name)
		if e.Type == EntryFile {
			e.Content = strings.ReplaceAll(e.Content, NamePlaceholder, name)
		}
		out[i] = e
	}
	return out
}
