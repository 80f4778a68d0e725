package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.burning.moe/celediel/plant/internal/tree"

	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"
)

// TestParseFixtures runs every archive in testdata. Each has an "input"
// section and either a "paths" section (one path per line, directories
// ending in /) or an "error" section (error type, then a message substring).
func TestParseFixtures(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, archive := range archives {
		name := strings.TrimSuffix(filepath.Base(archive), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(archive)
			if err != nil {
				t.Fatal(err)
			}
			sections := map[string]string{}
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}

			roots, err := Parse(sections["input"])

			if want, ok := sections["error"]; ok {
				kind, msg, _ := strings.Cut(strings.TrimSpace(want), "\n")
				checkError(t, err, kind, msg)
				if roots != nil {
					t.Fatalf("got roots %v along with an error", roots)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			want := strings.Fields(sections["paths"])
			if diff := cmp.Diff(want, paths(roots)); diff != "" {
				t.Fatalf("paths (-want +got):\n%s", diff)
			}
		})
	}
}

func checkError(t *testing.T, err error, kind, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}

	var matched bool
	switch kind {
	case "EmptyInputError":
		var e *EmptyInputError
		matched = errors.As(err, &e)
	case "MalformedLineError":
		var e *MalformedLineError
		matched = errors.As(err, &e)
	case "InconsistentIndentationError":
		var e *InconsistentIndentationError
		matched = errors.As(err, &e)
	default:
		t.Fatalf("unknown error kind %s in fixture", kind)
	}
	if !matched {
		t.Fatalf("expected %s, got %T: %s", kind, err, err)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Fatalf("error '%s' doesn't contain '%s'", err, msg)
	}
}

func paths(roots []*tree.Entry) []string {
	var out []string
	_ = tree.Walk(roots, func(e *tree.Entry) error {
		p := filepath.ToSlash(e.Path())
		if e.IsDir() {
			p += "/"
		}
		out = append(out, p)
		return nil
	})
	return out
}

func TestParseShape(t *testing.T) {
	roots, err := Parse("root/\n├── a/\n│   └── b.txt\n└── c.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 {
		t.Fatalf("got %d roots", len(roots))
	}
	root := roots[0]
	if root.Name() != "root/" || !root.IsDir() {
		t.Fatalf("bad root %q dir:%t", root.Name(), root.IsDir())
	}

	var names []string
	for _, child := range root.Children() {
		names = append(names, child.Name())
	}
	if diff := cmp.Diff([]string{"a/", "c.txt"}, names); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}

	a := root.Children()[0]
	if len(a.Children()) != 1 || a.Children()[0].Name() != "b.txt" || a.Children()[0].Parent() != a {
		t.Fatalf("a/ should have the single child b.txt")
	}
}

func TestParseDepthMatchesTree(t *testing.T) {
	input := `etc/
├── apache2/
│   ├── mods-available/
│   │   ├── alias.conf
│   │   └── dir.conf
│   └── envvars
└── hosts`
	lines, err := Normalize(input)
	if err != nil {
		t.Fatal(err)
	}
	roots, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}

	var i int
	_ = tree.Walk(roots, func(e *tree.Entry) error {
		c, err := Classify(lines[i])
		if err != nil {
			t.Fatal(err)
		}
		if Depth(c) != e.Depth() {
			t.Errorf("%s: resolved depth %d, tree depth %d", e.Path(), Depth(c), e.Depth())
		}
		if got := len(strings.Split(e.Path(), string(filepath.Separator))); got != e.Depth()+1 {
			t.Errorf("%s has %d components at depth %d", e.Path(), got, e.Depth())
		}
		i++
		return nil
	})
	if i != len(lines) {
		t.Fatalf("walked %d entries for %d lines", i, len(lines))
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"root/\n├── a/\n│   └── b.txt\n└── c.txt",
		"one\n└── two\n    └── three\n        ├── four/\n        └── five\nsix/",
		"app/\n|-- cmd/\n|   `-- main.go\n`-- go.mod",
	}
	for _, input := range inputs {
		t.Run(strings.SplitN(input, "\n", 2)[0], func(t *testing.T) {
			first, err := Parse(input)
			if err != nil {
				t.Fatal(err)
			}
			second, err := Parse(tree.Render(first))
			if err != nil {
				t.Fatalf("rendered tree doesn't parse: %s\n%s", err, tree.Render(first))
			}
			if diff := cmp.Diff(paths(first), paths(second)); diff != "" {
				t.Fatalf("round trip (-first +second):\n%s", diff)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n", "\r\n"} {
		_, err := Parse(input)
		var e *EmptyInputError
		if !errors.As(err, &e) {
			t.Fatalf("Parse(%q) = %v, want EmptyInputError", input, err)
		}
	}
}

func TestInconsistentNeverAttaches(t *testing.T) {
	// any depth above the open count fails instead of landing on another parent
	for extra := 2; extra < 6; extra++ {
		input := "root/\n├── a/\n" + strings.Repeat("    ", extra) + "└── x"
		_, err := Parse(input)
		var e *InconsistentIndentationError
		if !errors.As(err, &e) {
			t.Fatalf("depth %d: got %v", extra+1, err)
		}
		if e.Depth != extra+1 || e.Open != 2 || e.Line != 3 {
			t.Fatalf("depth %d: bad error fields %+v", extra+1, e)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text      string
		units     int
		connector bool
		name      string
	}{
		{"root/", 0, false, "root/"},
		{"├── a", 0, true, "a"},
		{"└── b/", 0, true, "b/"},
		{"│   ├── c", 1, true, "c"},
		{"    └── d", 1, true, "d"},
		{"│       └── e", 2, true, "e"},
		{"        f", 2, false, "f"},
		{"|   `-- g", 1, true, "g"},
		{"|-- has spaces.txt", 0, true, "has spaces.txt"},
		{"└── cli.py*", 0, true, "cli.py*"},
	}
	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			c, err := Classify(Line{Number: 1, Text: test.text})
			if err != nil {
				t.Fatal(err)
			}
			if c.Units != test.units || c.Connector != test.connector || c.Name != test.name {
				t.Fatalf("got units:%d connector:%t name:%q", c.Units, c.Connector, c.Name)
			}
		})
	}
}

func TestClassifyMalformed(t *testing.T) {
	for _, text := range []string{
		"├──",
		"├── ",
		"  a",
		"│  ├── a",
		"── a",
		"|",
		"|--a",
		"└── .",
		"└── /",
		"├── //",
		"└── a/b",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Classify(Line{Number: 7, Text: text})
			var e *MalformedLineError
			if !errors.As(err, &e) {
				t.Fatalf("got %v, want MalformedLineError", err)
			}
			if e.Line != 7 || e.Text != text {
				t.Fatalf("error lost its line: %+v", e)
			}
		})
	}
}

func TestClassifyBackslash(t *testing.T) {
	c, err := Classify(Line{Number: 1, Text: `└── a\b.txt`})
	if os.PathSeparator == '\\' {
		var e *MalformedLineError
		if !errors.As(err, &e) {
			t.Fatalf("got %v, want MalformedLineError", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("a backslash is a plain character here: %s", err)
	}
	if c.Name != `a\b.txt` {
		t.Fatalf("got name %q", c.Name)
	}
}
