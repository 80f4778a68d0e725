package parser

import (
	"regexp"
	"strings"
)

const (
	indentWidth = 4
	nbsp        = "\u00a0"
)

var (
	tab = strings.Repeat(" ", indentWidth)

	// the last line of `tree` output, "3 directories, 5 files"
	summaryLine = regexp.MustCompile(`^\d+ director(y|ies)(, \d+ files?)?$`)
)

// Line is a non-blank line of input and its 1-based number in the original text.
type Line struct {
	Number int
	Text   string
}

// Normalize splits text into lines, expands tabs and non-breaking spaces,
// trims trailing whitespace and drops blank lines and the `tree` summary.
func Normalize(text string) ([]Line, error) {
	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.ReplaceAll(raw, "\t", tab)
		raw = strings.ReplaceAll(raw, nbsp, " ")
		raw = strings.TrimRight(raw, " \r\v\f")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if summaryLine.MatchString(strings.TrimSpace(raw)) {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: raw})
	}

	if len(lines) == 0 {
		return nil, &EmptyInputError{}
	}
	return lines, nil
}
