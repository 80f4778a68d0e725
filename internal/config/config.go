// Package config loads defaults from an ini file in the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"git.burning.moe/celediel/plant/internal/filemode"
	"git.burning.moe/celediel/plant/internal/source"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"
)

const (
	appname  string = "plant"
	filename string = "config.ini"

	keyLog       string = "log"
	keyDirMode   string = "dir-mode"
	keyFileMode  string = "file-mode"
	keySource    string = "source"
	keyExec      string = "exec"
	keyExecMatch string = "exec-match"
	keyNoExec    string = "no-exec"
	keyNoMatch   string = "no-exec-match"
	keyConfirm   string = "confirm"
)

// Config is everything that can be set from the config file.
type Config struct {
	Path        string
	LogLevel    string
	DirMode     filemode.Optional
	FileMode    filemode.Optional
	Source      source.Kind
	Exec        []string
	ExecMatch   string
	NoExec      []string
	NoExecMatch string
	Confirm     bool
}

func Default() Config {
	return Config{LogLevel: "warn"}
}

// Find returns the path of the user's config file, or "" if there isn't one.
func Find() string {
	path, err := xdg.SearchConfigFile(filepath.Join(appname, filename))
	if err != nil {
		return ""
	}
	return path
}

// Load reads the user's config file if one exists, otherwise the defaults.
func Load() (Config, error) {
	path := Find()
	if path == "" {
		log.Debugf("no config file, using defaults")
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. Keys are read from the default
// section, so a file of plain key = value lines works.
//
//	log = info
//	dir-mode = 755
//	file-mode = 644
//	source = clipboard
//	exec = *.sh, *.py
//	exec-match = ^bin/
//	no-exec = setup.py
//	no-exec-match = ^test_
//	confirm = true
func LoadFile(path string) (Config, error) {
	c := Default()
	c.Path = path

	f, err := ini.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("config file %s doesn't exist", path)
		}
		return c, fmt.Errorf("couldn't read config file %s: %w", path, err)
	}
	s := f.Section(ini.DefaultSection)

	c.LogLevel = s.Key(keyLog).MustString(c.LogLevel)

	if c.DirMode, err = filemode.ParseOptional(s.Key(keyDirMode).String()); err != nil {
		return c, fmt.Errorf("%s: %s: %w", path, keyDirMode, err)
	}
	if c.FileMode, err = filemode.ParseOptional(s.Key(keyFileMode).String()); err != nil {
		return c, fmt.Errorf("%s: %s: %w", path, keyFileMode, err)
	}
	if c.Source, err = source.ParseKind(s.Key(keySource).String()); err != nil {
		return c, fmt.Errorf("%s: %s: %w", path, keySource, err)
	}

	c.Exec = globs(s.Key(keyExec))
	c.ExecMatch = s.Key(keyExecMatch).String()
	c.NoExec = globs(s.Key(keyNoExec))
	c.NoExecMatch = s.Key(keyNoMatch).String()

	if s.HasKey(keyConfirm) {
		if c.Confirm, err = s.Key(keyConfirm).Bool(); err != nil {
			return c, fmt.Errorf("%s: %s: %w", path, keyConfirm, err)
		}
	}

	log.Debugf("loaded config from %s", path)
	return c, nil
}

// globs splits a comma separated list, dropping empty items.
func globs(key *ini.Key) (out []string) {
	for _, glob := range key.Strings(",") {
		if glob = strings.TrimSpace(glob); glob != "" {
			out = append(out, glob)
		}
	}
	return
}
