// Package tree holds the in-memory hierarchy parsed out of a tree diagram.
package tree

import (
	"os"
	"path/filepath"
	"strings"
)

// Marker is the trailing character that marks an entry as a directory.
const Marker = "/"

// Entry is one line of a tree diagram: a directory or a file.
type Entry struct {
	name     string
	dir      bool
	depth    int
	parent   *Entry
	children []*Entry
}

// New makes a root entry.
func New(name string) *Entry {
	return &Entry{
		name: name,
		dir:  HasMarker(name),
	}
}

// Add appends a child named name to e and returns it. e becomes a
// directory whether or not its name carries a marker.
func (e *Entry) Add(name string) *Entry {
	child := &Entry{
		name:   name,
		dir:    HasMarker(name),
		depth:  e.depth + 1,
		parent: e,
	}
	e.children = append(e.children, child)
	e.dir = true
	return child
}

// Name is the name as written, marker included.
func (e *Entry) Name() string { return e.name }

// Base is the name without its directory marker, usable as a path segment.
func (e *Entry) Base() string { return TrimMarker(e.name) }

func (e *Entry) IsDir() bool        { return e.dir }
func (e *Entry) Depth() int         { return e.depth }
func (e *Entry) Parent() *Entry     { return e.parent }
func (e *Entry) Children() []*Entry { return e.children }
func (e *Entry) IsRoot() bool       { return e.parent == nil }

// Path joins the names from the root down to e with the platform separator.
func (e *Entry) Path() string {
	if e.IsRoot() {
		return e.Base()
	}
	return filepath.Join(e.parent.Path(), e.Base())
}

func (e *Entry) String() string {
	return e.Path()
}

// HasMarker reports whether name ends in a directory marker.
func HasMarker(name string) bool {
	return strings.HasSuffix(name, Marker) || strings.HasSuffix(name, string(os.PathSeparator))
}

// TrimMarker strips a single trailing directory marker.
func TrimMarker(name string) string {
	if strings.HasSuffix(name, Marker) {
		return strings.TrimSuffix(name, Marker)
	}
	return strings.TrimSuffix(name, string(os.PathSeparator))
}
