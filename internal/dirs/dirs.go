package dirs

import (
	"os"
	"path/filepath"
	"strings"
)

// UnExpand unexpands some directory shortcuts for display
//
// $PWD -> .
//
// $HOME -> ~
func UnExpand(dir string) (outdir string) {
	var (
		home = os.Getenv("HOME")
		pwd  string
		err  error
	)

	outdir = filepath.Clean(dir)
	if abs, e := filepath.Abs(outdir); e == nil {
		outdir = abs
	}

	pwd, err = os.Getwd()
	if err == nil && home != pwd {
		if rel, e := filepath.Rel(pwd, outdir); e == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}

	if home != "" && (outdir == home || strings.HasPrefix(outdir, home+string(os.PathSeparator))) {
		outdir = "~" + strings.TrimPrefix(outdir, home)
	}

	return
}
