package prompt

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Interactive reports whether both stdin and stdout are terminals, which
// is needed to ask anything.
func Interactive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal's width and height, or 80x24 if it can't tell.
func Size() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// YesNo asks a yes or no question. Anything other than a yes, including
// not being able to ask, is a no.
func YesNo(prompt string) bool {
	if !Interactive() {
		log.Warnf("can't ask '%s' without a terminal, assuming no", prompt)
		return false
	}

	var yes bool
	if err := huh.NewConfirm().
		Title(prompt).
		Affirmative("yes").
		Negative("no").
		Value(&yes).
		Run(); err != nil {
		log.Debugf("prompt failed: %s", err)
		return false
	}
	return yes
}
