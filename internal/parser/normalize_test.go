package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	input := "\nroot/\r\n\t├── a\n│   └── b   \n\n3 directories, 2 files\n"
	got, err := Normalize(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []Line{
		{Number: 2, Text: "root/"},
		{Number: 3, Text: "    ├── a"},
		{Number: 4, Text: "│   └── b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized lines (-want +got):\n%s", diff)
	}
}

func TestNormalizeSummary(t *testing.T) {
	for _, line := range []string{"1 directory", "12 directories, 1 file", "0 directories, 40 files"} {
		if _, err := Normalize(line); err == nil {
			t.Fatalf("summary line %q wasn't dropped", line)
		}
	}
	if _, err := Normalize("2 directories and a file"); err != nil {
		t.Fatalf("a name that only looks like a summary was dropped: %s", err)
	}
}
