package dirs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnExpand(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "work")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)

	pwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(pwd) })

	tests := map[string]string{
		work:                             ".",
		filepath.Join(work, "a", "b"):    filepath.Join("a", "b"),
		"a/../c":                         "c",
		home:                             "~",
		filepath.Join(home, "elsewhere"): filepath.Join("~", "elsewhere"),
		filepath.Join(home + "x"):        filepath.Clean(home + "x"),
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			if got := UnExpand(input); got != want {
				t.Fatalf("UnExpand(%s) = %s, want %s", input, got, want)
			}
		})
	}
}
