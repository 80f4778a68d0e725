package tree

import "errors"

// SkipChildren can be returned from a WalkFunc to leave out an entry's children.
var SkipChildren = errors.New("skip children")

type WalkFunc func(e *Entry) error

// Walk visits every entry under roots in pre-order: parents before children,
// siblings in the order they were added. Any error other than SkipChildren
// stops the walk and is returned.
func Walk(roots []*Entry, fn WalkFunc) error {
	for _, root := range roots {
		if err := walk(root, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(e *Entry, fn WalkFunc) error {
	if err := fn(e); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range e.children {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of directories and files under roots.
func Count(roots []*Entry) (dirs, files int) {
	_ = Walk(roots, func(e *Entry) error {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return
}
