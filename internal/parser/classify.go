package parser

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"git.burning.moe/celediel/plant/internal/tree"
)

// An indent unit is four columns: plain spaces, or a continuation bar
// followed by three spaces. The connector is a branch glyph, two dashes
// and a space. Both come in box-drawing and ASCII (`tree --charset=ascii`) flavours.
var linePattern = regexp.MustCompile(
	"^(?P<indent>(?:    |│   |\\|   )*)" +
		"(?P<connector>[├└]── |[|`]-- )?" +
		"(?P<name>.*)$",
)

var (
	indentGroup    = linePattern.SubexpIndex("indent")
	connectorGroup = linePattern.SubexpIndex("connector")
	nameGroup      = linePattern.SubexpIndex("name")
)

// Classified is a line split into its parts.
type Classified struct {
	Line
	// Units is the number of four-column indent units before the connector.
	Units     int
	Connector bool
	// Name still carries its directory marker, if any.
	Name string
}

// Classify splits a normalized line into indent, connector and name.
func Classify(line Line) (Classified, error) {
	m := linePattern.FindStringSubmatch(line.Text)
	if m == nil {
		return Classified{}, malformed(line, "no indentation, connector or name")
	}

	indent := strings.ReplaceAll(m[indentGroup], "│", " ")
	c := Classified{
		Line:      line,
		Units:     len(indent) / indentWidth,
		Connector: m[connectorGroup] != "",
		Name:      m[nameGroup],
	}

	if reason := checkName(c.Name); reason != "" {
		return Classified{}, malformed(line, reason)
	}
	return c, nil
}

func checkName(name string) string {
	first, _ := utf8.DecodeRuneInString(name)
	switch {
	case name == "":
		return "missing name"
	case strings.TrimLeft(name, " ") != name:
		return "indentation isn't a multiple of 4 columns"
	case strings.ContainsRune("│├└─", first),
		strings.HasPrefix(name, "|-"),
		strings.HasPrefix(name, "`-"),
		name == "|":
		return "stray tree glyph"
	}

	base := tree.TrimMarker(name)
	switch {
	case base == "":
		return "missing name"
	case base == "." || base == "..":
		return "name can't be '.' or '..'"
	case strings.Contains(base, tree.Marker),
		strings.ContainsRune(base, os.PathSeparator):
		return "name can't contain a path separator"
	}
	return ""
}

func malformed(line Line, reason string) *MalformedLineError {
	return &MalformedLineError{Line: line.Number, Text: line.Text, Reason: reason}
}
