package materialize

import (
	"os"
	"path/filepath"

	"git.burning.moe/celediel/plant/internal/filemode"
	"git.burning.moe/celediel/plant/internal/tree"
)

type Action int

const (
	Create Action = iota + 1
	Exists
	Truncate
	Conflict
)

func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Exists:
		return "exists"
	case Truncate:
		return "truncate"
	case Conflict:
		return "conflict"
	default:
		return "0"
	}
}

// Step is what a run would do with a single entry.
type Step struct {
	Entry  *tree.Entry
	Path   string
	Dir    bool
	Mode   filemode.Optional
	Action Action
	// Size of the existing file that would be truncated.
	Size int64
}

// Plan lists what Run would do beneath base, in the same order, without
// touching anything on disk.
func (m *Materializer) Plan(base string, roots []*tree.Entry) []Step {
	var steps []Step
	_ = tree.Walk(roots, func(e *tree.Entry) error {
		step := Step{
			Entry:  e,
			Path:   filepath.Join(base, e.Path()),
			Dir:    e.IsDir(),
			Action: Create,
		}
		if step.Dir {
			step.Mode = m.DirMode()
		} else {
			step.Mode = m.FileMode(e)
		}

		info, err := os.Stat(step.Path)
		switch {
		case err != nil:
		case step.Dir && info.IsDir():
			step.Action = Exists
		case step.Dir, info.IsDir():
			step.Action = Conflict
		case info.Size() > 0:
			step.Action = Truncate
			step.Size = info.Size()
		default:
			step.Action = Exists
		}

		steps = append(steps, step)
		return nil
	})
	return steps
}

// Conflicts returns the steps that would fail.
func Conflicts(steps []Step) []Step {
	var out []Step
	for _, step := range steps {
		if step.Action == Conflict {
			out = append(out, step)
		}
	}
	return out
}
