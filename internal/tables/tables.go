// Package tables shows a dry-run plan in a charm-powered table.
package tables

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"git.burning.moe/celediel/plant/internal/dirs"
	"git.burning.moe/celediel/plant/internal/materialize"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	woffset int = 13 // borders and column padding
	hoffset int = 6
	poffset int = 2

	pathColumn   string = "path"
	kindColumn   string = "kind"
	modeColumn   string = "mode"
	actionColumn string = "action"
	sizeColumn   string = "size"
	bar          string = "───"

	pathColumnW   float64 = 0.52
	kindColumnW   float64 = 0.10
	modeColumnW   float64 = 0.10
	actionColumnW float64 = 0.14
	sizeColumnW   float64 = 0.14

	// TODO: make these configurable or something
	borderbg    string = "5"
	hoveritembg string = "13"
	black       string = "0"
	darkblack   string = "8"
	white       string = "7"
	darkgray    string = "15"
	red         string = "1"
)

var (
	style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderbg))
	regulartext = lipgloss.NewStyle().
			Padding(0, poffset)
	darktext = lipgloss.NewStyle().
			Foreground(lipgloss.Color(darkgray))
	darkertext = lipgloss.NewStyle().
			Foreground(lipgloss.Color(darkblack))
	darkesttext = lipgloss.NewStyle().
			Foreground(lipgloss.Color(black))
	conflicttext = lipgloss.NewStyle().
			Foreground(lipgloss.Color(red))
)

type model struct {
	table      table.Model
	keys       keyMap
	termheight int
	termwidth  int
	base       string
	steps      []materialize.Step
}

func newModel(steps []materialize.Step, base string, width, height int) model {
	m := model{
		keys:       defaultKeyMap(),
		termwidth:  width,
		termheight: height,
		base:       base,
		steps:      steps,
	}

	theight := min(m.termheight-hoffset, len(steps))
	m.table = createTable(m.columns(), m.rows(), theight, m.onePage(theight))
	return m
}

type keyMap struct {
	quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c", "enter"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m model) Init() tea.Cmd {
	if m.onePage(m.table.Height()) {
		return tea.Quit
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termwidth, m.termheight = msg.Width, msg.Height
		m.table.SetColumns(m.columns())
		m.table.SetHeight(min(m.termheight-hoffset, len(m.steps)))
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	panels := []string{
		m.header(),
		style.Render(m.table.View()),
	}
	if m.onePage(m.table.Height()) {
		return lipgloss.JoinVertical(lipgloss.Top, panels...) + "\n"
	}
	panels = append(panels, m.footer())
	return lipgloss.JoinVertical(lipgloss.Top, panels...)
}

func (m model) onePage(height int) bool {
	return height >= len(m.steps)
}

func (m model) header() string {
	var (
		dot     = darkesttext.Render("•")
		counts  = map[materialize.Action]int{}
		summary []string
	)
	for _, step := range m.steps {
		counts[step.Action]++
	}
	for _, action := range []materialize.Action{materialize.Create, materialize.Exists, materialize.Truncate, materialize.Conflict} {
		if n := counts[action]; n > 0 {
			summary = append(summary, fmt.Sprintf("%d %s", n, action))
		}
	}
	return fmt.Sprintf(" dry run in %s %s %s", dirs.UnExpand(m.base), dot, strings.Join(summary, darkesttext.Render(" • ")))
}

func (m model) footer() string {
	return regulartext.Render(fmt.Sprintf("%s %s", darktext.Render(m.keys.quit.Help().Key), darkertext.Render(m.keys.quit.Help().Desc)))
}

func (m model) columns() []table.Column {
	width := float64(m.termwidth - woffset)
	return []table.Column{
		{Title: pathColumn, Width: int(math.Round(width * pathColumnW))},
		{Title: kindColumn, Width: int(math.Round(width * kindColumnW))},
		{Title: modeColumn, Width: int(math.Round(width * modeColumnW))},
		{Title: actionColumn, Width: int(math.Round(width * actionColumnW))},
		{Title: sizeColumn, Width: int(math.Round(width * sizeColumnW))},
	}
}

func (m model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.steps))
	for _, step := range m.steps {
		rows = append(rows, Row(step))
	}
	return rows
}

// Row is a step as table cells: name indented by depth, kind, mode, action and size.
func Row(step materialize.Step) table.Row {
	var (
		kind   = "file"
		size   = bar
		name   = step.Entry.Base()
		action = step.Action.String()
	)
	if step.Dir {
		kind = "dir"
		name += "/"
	}
	if step.Action == materialize.Truncate {
		size = humanize.Bytes(uint64(step.Size))
	}
	return table.Row{
		strings.Repeat("  ", step.Entry.Depth()) + name,
		kind,
		step.Mode.String(),
		action,
		size,
	}
}

// Show displays steps in a table, and waits for a key unless it all fits on one page.
func Show(steps []materialize.Step, base string, width, height int) error {
	_, err := tea.NewProgram(newModel(steps, base, width, height)).Run()
	return err
}

// Print writes steps as plain lines, for when there's no terminal to draw on.
func Print(w io.Writer, steps []materialize.Step) {
	for _, step := range steps {
		row := Row(step)
		path := step.Entry.Path()
		if step.Dir {
			path += string(filepath.Separator)
		}
		line := fmt.Sprintf("%-9s %-4s %-7s %s", row[3], row[1], row[2], path)
		if step.Action == materialize.Truncate {
			line += fmt.Sprintf(" (%s)", row[4])
		}
		if step.Action == materialize.Conflict {
			line = conflicttext.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func createTable(columns []table.Column, rows []table.Row, height int, onepage bool) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!onepage),
		table.WithHeight(height),
	)
	if onepage {
		t.SetStyles(makeUnselectedStyle())
	} else {
		t.SetStyles(makeStyle())
	}
	return t
}

func makeStyle() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(black)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(white)).
		Background(lipgloss.Color(hoveritembg)).
		Bold(false)

	return s
}

func makeUnselectedStyle() table.Styles {
	style := makeStyle()
	style.Selected = style.Selected.
		Foreground(lipgloss.NoColor{}).
		Background(lipgloss.NoColor{}).
		Bold(false)
	return style
}
