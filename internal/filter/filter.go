// Package filter matches entry names against globs and regexes
package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
)

type Filter struct {
	globs, unglobs []string
	matcher        *regexp.Regexp
	unmatcher      *regexp.Regexp
}

// Match reports whether name matches any of the globs or the pattern, and
// none of the exclusions. Exclusions only ever narrow a match, so a filter
// without globs or a pattern matches nothing.
func (f *Filter) Match(name string) bool {
	if f == nil || f.Blank() {
		return false
	}
	name = filepath.Clean(name)

	if f.has_unregex() && f.unmatcher.MatchString(name) {
		return false
	}

	for _, unglob := range f.unglobs {
		if match, err := filepath.Match(unglob, name); err != nil || match {
			return false
		}
	}

	if f.has_regex() && f.matcher.MatchString(name) {
		return true
	}

	for _, glob := range f.globs {
		if match, err := filepath.Match(glob, name); err == nil && match {
			return true
		}
	}

	return false
}

func (f *Filter) AddGlob(glob string) error {
	if _, err := filepath.Match(glob, ""); err != nil {
		return fmt.Errorf("bad glob '%s': %w", glob, err)
	}
	f.globs = append(f.globs, glob)
	return nil
}

func (f *Filter) AddUnGlob(unglob string) error {
	if _, err := filepath.Match(unglob, ""); err != nil {
		return fmt.Errorf("bad glob '%s': %w", unglob, err)
	}
	f.unglobs = append(f.unglobs, unglob)
	return nil
}

func (f *Filter) SetPattern(pattern string) error {
	var err error
	f.matcher, err = regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern '%s': %w", pattern, err)
	}
	return nil
}

func (f *Filter) SetUnPattern(unpattern string) error {
	var err error
	f.unmatcher, err = regexp.Compile(unpattern)
	if err != nil {
		return fmt.Errorf("bad pattern '%s': %w", unpattern, err)
	}
	return nil
}

func (f *Filter) Blank() bool {
	return !f.has_regex() &&
		!f.has_unregex() &&
		len(f.globs) == 0 &&
		len(f.unglobs) == 0
}

func (f *Filter) String() string {
	var m, unm string
	if f.matcher != nil {
		m = f.matcher.String()
	}
	if f.unmatcher != nil {
		unm = f.unmatcher.String()
	}
	return fmt.Sprintf("globs:'%v' regex:'%s' unglobs:'%v' unregex:'%s'",
		f.globs, m,
		f.unglobs, unm,
	)
}

func (f *Filter) has_regex() bool {
	if f.matcher == nil {
		return false
	}
	return f.matcher.String() != ""
}

func (f *Filter) has_unregex() bool {
	if f.unmatcher == nil {
		return false
	}
	return f.unmatcher.String() != ""
}

func New(globs []string, pattern string, unglobs []string, unpattern string) (*Filter, error) {
	f := &Filter{}

	for _, glob := range globs {
		if glob == "" {
			continue
		}
		if err := f.AddGlob(glob); err != nil {
			return nil, err
		}
	}

	for _, unglob := range unglobs {
		if unglob == "" {
			continue
		}
		if err := f.AddUnGlob(unglob); err != nil {
			return nil, err
		}
	}

	if err := f.SetPattern(pattern); err != nil {
		return nil, err
	}
	if err := f.SetUnPattern(unpattern); err != nil {
		return nil, err
	}

	return f, nil
}
