package config

import (
	"os"
	"path/filepath"
	"testing"

	"git.burning.moe/celediel/plant/internal/filemode"
	"git.burning.moe/celediel/plant/internal/source"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := write(t, `
log = debug
dir-mode = 750
file-mode = 0640
source = stdin
exec = *.sh, *.py,
exec-match = ^run
no-exec = setup.py
no-exec-match = ^test_
confirm = true
`)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Path:        path,
		LogLevel:    "debug",
		DirMode:     filemode.Some(0750),
		FileMode:    filemode.Some(0640),
		Source:      source.StandardInput,
		Exec:        []string{"*.sh", "*.py"},
		ExecMatch:   "^run",
		NoExec:      []string{"setup.py"},
		NoExecMatch: "^test_",
		Confirm:     true,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	c, err := LoadFile(write(t, "# nothing set\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "warn" || c.DirMode.Set || c.FileMode.Set || c.Source != source.Auto || c.Confirm {
		t.Fatalf("defaults not kept: %+v", c)
	}
}

func TestLoadFileErrors(t *testing.T) {
	for name, content := range map[string]string{
		"dir mode":  "dir-mode = 999",
		"file mode": "file-mode = rw-r--r--",
		"source":    "source = carrier pigeon",
		"confirm":   "confirm = perhaps",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(write(t, content)); err == nil {
				t.Fatalf("bad %s accepted", name)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
