// Package source reads tree diagrams from a file, standard input or the clipboard.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"git.burning.moe/celediel/plant/internal/parser"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// Stdin is the file name that means standard input.
const Stdin = "-"

type Kind int

const (
	Auto Kind = iota
	File
	Clipboard
	StandardInput
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case File:
		return "input file"
	case Clipboard:
		return "clipboard"
	case StandardInput:
		return "standard input"
	default:
		return "0"
	}
}

// ParseKind reads a kind as written in flags or config.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "clipboard", "clip":
		return Clipboard, nil
	case "stdin", "-":
		return StandardInput, nil
	default:
		return Auto, fmt.Errorf("unknown input source '%s' (want auto, clipboard or stdin)", s)
	}
}

// ReadClipboard is swapped out in tests.
var ReadClipboard = func() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("no clipboard available")
	}
	return clipboard.ReadAll()
}

type Options struct {
	// Path to read from. Stdin ("-") means standard input. Overrides Kind.
	Path string
	Kind Kind
	// Stdin is used for standard input; os.Stdin if nil.
	Stdin io.Reader
	// StdinIsTerminal stops Auto from waiting on an interactive stdin.
	StdinIsTerminal bool
}

// Read returns the text of the tree diagram and the kind it came from.
//
// With a Path, that file (or stdin) is read. Otherwise Auto tries the
// clipboard first and falls back to stdin when stdin isn't a terminal.
// Blank text is an *parser.EmptyInputError naming the source.
func Read(opts Options) (string, Kind, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	switch {
	case opts.Path == Stdin:
		return readStdin(opts.Stdin)
	case opts.Path != "":
		return readFile(opts.Path)
	}

	switch opts.Kind {
	case Clipboard:
		return readClipboard()
	case StandardInput:
		return readStdin(opts.Stdin)
	}

	text, kind, err := readClipboard()
	if err == nil {
		return text, kind, nil
	}
	if opts.StdinIsTerminal {
		return "", kind, err
	}
	log.Debugf("nothing usable on the clipboard (%s), reading stdin", err)
	return readStdin(opts.Stdin)
}

func readFile(path string) (string, Kind, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", File, fmt.Errorf("error reading input: %w", err)
	}
	log.Debugf("read %d bytes from %s", len(b), path)
	return check(string(b), File)
}

func readStdin(r io.Reader) (string, Kind, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", StandardInput, fmt.Errorf("error reading input: %w", err)
	}
	log.Debugf("read %d bytes from stdin", len(b))
	return check(string(b), StandardInput)
}

func readClipboard() (string, Kind, error) {
	text, err := ReadClipboard()
	if err != nil {
		return "", Clipboard, fmt.Errorf("error reading input: %w", err)
	}
	log.Debugf("read %d bytes from the clipboard", len(text))
	return check(text, Clipboard)
}

func check(text string, kind Kind) (string, Kind, error) {
	if strings.TrimSpace(text) == "" {
		return "", kind, &parser.EmptyInputError{Source: kind.String()}
	}
	return text, kind, nil
}
