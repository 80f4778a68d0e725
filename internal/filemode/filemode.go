// Package filemode does things io/fs doesn't do
package filemode

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// Perm is the largest mode Parse accepts.
const Perm fs.FileMode = 0777

// Parse parses a string of 3 or 4 octal digits as a *NIX filesystem permission.
//
//	"0777" or "777" -> fs.FileMode(0777)
//
//	"0644" or "644" -> fs.FileMode(0644)
//
// Anything outside 000 to 777 is an error.
func Parse(input string) (fs.FileMode, error) {
	const simplemodelen = 3
	input = strings.TrimPrefix(strings.TrimSpace(input), "0o")
	if input == "" {
		return fs.FileMode(0), nil
	}
	if len(input) == simplemodelen {
		input = "0" + input
	}
	md, e := strconv.ParseUint(input, 8, 64)
	if e != nil {
		return 0, fmt.Errorf("'%s' isn't an octal number", input)
	}
	if md > uint64(Perm) {
		return 0, fmt.Errorf("'%s' is outside 000 to 777", input)
	}

	return fs.FileMode(md), nil
}

// Optional is a mode that may not have been given at all.
type Optional struct {
	Mode fs.FileMode
	Set  bool
}

func (o Optional) String() string {
	if !o.Set {
		return "default"
	}
	return fmt.Sprintf("%#o", o.Mode)
}

// Or returns the mode if it's set, or def if it isn't.
func (o Optional) Or(def fs.FileMode) fs.FileMode {
	if o.Set {
		return o.Mode
	}
	return def
}

// ParseOptional is Parse, but an empty input means unset instead of 000.
func ParseOptional(input string) (Optional, error) {
	if strings.TrimSpace(input) == "" {
		return Optional{}, nil
	}
	md, err := Parse(input)
	if err != nil {
		return Optional{}, err
	}
	return Optional{Mode: md, Set: true}, nil
}

// Some wraps a mode that is known to be set.
func Some(mode fs.FileMode) Optional {
	return Optional{Mode: mode & Perm, Set: true}
}
