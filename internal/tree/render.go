package tree

import "strings"

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	blank      = "    "
)

// Style decorates a name while rendering. The plain renderer uses the name as is.
type Style func(e *Entry) string

// Render draws roots as a box-drawing diagram, one entry per line.
// Parsing the result gives back the same tree.
func Render(roots []*Entry) string {
	return RenderStyled(roots, func(e *Entry) string { return e.Name() })
}

// RenderStyled is Render with a custom name decorator.
func RenderStyled(roots []*Entry, style Style) string {
	var sb strings.Builder
	for _, root := range roots {
		sb.WriteString(style(root))
		sb.WriteByte('\n')
		renderChildren(&sb, root, "", style)
	}
	return sb.String()
}

func renderChildren(sb *strings.Builder, e *Entry, prefix string, style Style) {
	for i, child := range e.children {
		last := i == len(e.children)-1
		connector, next := branch, pipe
		if last {
			connector, next = lastBranch, blank
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(style(child))
		sb.WriteByte('\n')
		renderChildren(sb, child, prefix+next, style)
	}
}
