package materialize

import (
	"fmt"
	"io/fs"
)

// PathConflictError means the base path exists but isn't a directory.
type PathConflictError struct {
	Path string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("the path '%s' is not a directory", e.Path)
}

// PermissionApplyError means a created entry couldn't be given its mode.
// It's reported but doesn't stop the run.
type PermissionApplyError struct {
	Path string
	Mode fs.FileMode
	Err  error
}

func (e *PermissionApplyError) Error() string {
	return fmt.Sprintf("error setting permissions %#o for '%s': %s", e.Mode, e.Path, e.Err)
}

func (e *PermissionApplyError) Unwrap() error { return e.Err }

// CreateError means a directory or file couldn't be created. It stops the run.
type CreateError struct {
	Path string
	Dir  bool
	Err  error
}

func (e *CreateError) Error() string {
	what := "file"
	if e.Dir {
		what = "directory"
	}
	return fmt.Sprintf("couldn't create %s '%s': %s", what, e.Path, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }
