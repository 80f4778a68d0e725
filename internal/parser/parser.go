// Package parser turns a box-drawing tree diagram into a tree of entries.
//
// Both the `tree` glyphs (├── └── │) and their ASCII versions (|-- `-- |)
// are understood, as is plain 4-space or tab indentation. A name ending in
// "/" is a directory, and so is any entry that has children.
package parser

import (
	"strings"

	"git.burning.moe/celediel/plant/internal/tree"

	"github.com/charmbracelet/log"
)

// Parse reads a tree diagram and returns its root entries in the order they appear.
// Nothing is returned unless the whole input parses.
func Parse(text string) ([]*tree.Entry, error) {
	lines, err := Normalize(text)
	if err != nil {
		return nil, err
	}

	var (
		roots []*tree.Entry
		stack []*tree.Entry
	)

	for i, line := range lines {
		if i == 0 {
			line.Text = strings.TrimLeft(line.Text, " ")
		}

		c, err := Classify(line)
		if err != nil {
			return nil, err
		}

		depth, err := Resolve(c, len(stack))
		if err != nil {
			return nil, err
		}
		stack = stack[:depth]

		var entry *tree.Entry
		if depth == 0 {
			entry = tree.New(c.Name)
			roots = append(roots, entry)
		} else {
			entry = stack[depth-1].Add(c.Name)
		}
		stack = append(stack, entry)

		log.Debugf("line %d: depth %d %s", c.Number, depth, entry.Path())
	}

	return roots, nil
}
