// Package materialize creates the directories and files of a parsed tree on disk.
package materialize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"git.burning.moe/celediel/plant/internal/filemode"
	"git.burning.moe/celediel/plant/internal/filter"
	"git.burning.moe/celediel/plant/internal/tree"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
)

const (
	// what new entries get before umask when no mode is configured
	defaultDirPerm  fs.FileMode = 0777
	defaultFilePerm fs.FileMode = 0666

	// executable files start from this when no file mode is configured
	defaultExecBase fs.FileMode = 0644
	execBits        fs.FileMode = 0111
	ownerWrite      fs.FileMode = 0200
)

type Options struct {
	DirMode  filemode.Optional
	FileMode filemode.Optional
	// Executable picks the files that get execute bits on top of FileMode.
	Executable *filter.Filter
}

type Result struct {
	Dirs, Files int
	// Truncated counts existing non-empty files that were emptied.
	Truncated int
	// Warnings holds every PermissionApplyError, or is nil.
	Warnings error
}

type Materializer struct {
	opts  Options
	chmod func(name string, mode fs.FileMode) error
}

func New(opts Options) *Materializer {
	return &Materializer{
		opts:  opts,
		chmod: os.Chmod,
	}
}

// FileMode is the mode e will be given if it's a file.
func (m *Materializer) FileMode(e *tree.Entry) filemode.Optional {
	if m.opts.Executable.Match(e.Base()) {
		return filemode.Some(m.opts.FileMode.Or(defaultExecBase) | execBits)
	}
	return m.opts.FileMode
}

// DirMode is the mode every directory will be given.
func (m *Materializer) DirMode() filemode.Optional {
	return m.opts.DirMode
}

// Run creates every entry of roots beneath base, parents before children.
// A directory's mode is applied once everything inside it exists, so a
// read-only mode doesn't get in the way of creating its contents.
//
// Failing to create an entry stops the run. Failing to apply a mode is
// logged and collected in Result.Warnings.
func (m *Materializer) Run(base string, roots []*tree.Entry) (Result, error) {
	var (
		res      Result
		warnings *multierror.Error
	)

	for _, root := range roots {
		if err := m.create(base, root, &res, &warnings); err != nil {
			res.Warnings = warnings.ErrorOrNil()
			return res, err
		}
	}

	res.Warnings = warnings.ErrorOrNil()
	return res, nil
}

func (m *Materializer) create(base string, e *tree.Entry, res *Result, warnings **multierror.Error) error {
	target := filepath.Join(base, e.Path())

	if !e.IsDir() {
		truncated, err := m.touch(target)
		if err != nil {
			return err
		}
		if truncated {
			res.Truncated++
		}
		res.Files++
		*warnings = m.apply(*warnings, target, m.FileMode(e))
		return nil
	}

	if err := os.MkdirAll(target, defaultDirPerm); err != nil {
		return &CreateError{Path: target, Dir: true, Err: err}
	}
	log.Debugf("dir: %s", target)
	res.Dirs++

	for _, child := range e.Children() {
		if err := m.create(base, child, res, warnings); err != nil {
			return err
		}
	}

	*warnings = m.apply(*warnings, target, m.opts.DirMode)
	return nil
}

// touch makes an empty file at path, emptying it if it already exists.
func (m *Materializer) touch(path string) (truncated bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return false, &CreateError{Path: filepath.Dir(path), Dir: true, Err: err}
	}

	if info, e := os.Stat(path); e == nil && info.Mode().IsRegular() {
		if info.Size() > 0 {
			log.Warnf("truncating %s (%s)", path, humanize.Bytes(uint64(info.Size())))
			truncated = true
		}
		// read-only from an earlier run, writable just long enough to truncate
		if perm := info.Mode().Perm(); perm&ownerWrite == 0 {
			if err := os.Chmod(path, perm|ownerWrite); err != nil {
				log.Debugf("couldn't make %s writable: %s", path, err)
			} else {
				defer os.Chmod(path, perm)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		return false, &CreateError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return false, &CreateError{Path: path, Err: err}
	}

	log.Debugf("file: %s", path)
	return truncated, nil
}

func (m *Materializer) apply(warnings *multierror.Error, path string, mode filemode.Optional) *multierror.Error {
	if !mode.Set {
		return warnings
	}
	if err := m.chmod(path, mode.Mode); err != nil {
		perr := &PermissionApplyError{Path: path, Mode: mode.Mode, Err: err}
		log.Error(perr)
		return multierror.Append(warnings, perr)
	}
	return warnings
}

// CheckBase fails with a PathConflictError if path exists and isn't a directory.
// A path that doesn't exist yet is fine.
func CheckBase(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case !info.IsDir():
		return &PathConflictError{Path: path}
	}
	return nil
}

// EnsureBase creates path if it doesn't exist yet.
func EnsureBase(path string) error {
	if err := CheckBase(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, defaultDirPerm); err != nil {
		return &CreateError{Path: path, Dir: true, Err: err}
	}
	return nil
}

// PermissionErrors unpacks Result.Warnings.
func PermissionErrors(warnings error) []*PermissionApplyError {
	var merr *multierror.Error
	if !errors.As(warnings, &merr) {
		return nil
	}
	out := make([]*PermissionApplyError, 0, len(merr.Errors))
	for _, err := range merr.Errors {
		var perr *PermissionApplyError
		if errors.As(err, &perr) {
			out = append(out, perr)
		}
	}
	return out
}
