package parser

// Depth is the nesting level of a classified line: one per indent unit,
// plus one when the line has a connector.
func Depth(c Classified) int {
	depth := c.Units
	if c.Connector {
		depth++
	}
	return depth
}

// Resolve works out the depth of c and checks it against the number of
// entries currently open. A line may close any number of open entries but
// can only go one level deeper than the innermost open one.
func Resolve(c Classified, open int) (int, error) {
	depth := Depth(c)
	if depth > open {
		return 0, &InconsistentIndentationError{
			Line:  c.Number,
			Text:  c.Text,
			Depth: depth,
			Open:  open,
		}
	}
	return depth, nil
}
