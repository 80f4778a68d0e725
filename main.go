package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"git.burning.moe/celediel/plant/internal/config"
	"git.burning.moe/celediel/plant/internal/dirs"
	"git.burning.moe/celediel/plant/internal/filemode"
	"git.burning.moe/celediel/plant/internal/filter"
	"git.burning.moe/celediel/plant/internal/materialize"
	"git.burning.moe/celediel/plant/internal/parser"
	"git.burning.moe/celediel/plant/internal/prompt"
	"git.burning.moe/celediel/plant/internal/source"
	"git.burning.moe/celediel/plant/internal/tables"
	"git.burning.moe/celediel/plant/internal/tree"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v2"
	"gitlab.com/tymonx/go-formatter/formatter"
)

const (
	appname    string = "plant"
	appdesc    string = "turn a tree diagram into directories and files"
	appversion string = "v0.0.1"

	summary_template string = "created {dirs} and {files} in {path}"
)

var (
	loglvl, configfile string
	inputfile, srcname string
	dmode, fmode       string
	execmatch          string
	noexecmatch        string
	dryrun, printtree  bool
	askconfirm         bool

	cfg config.Config

	dirstyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5"))
	filestyle = lipgloss.NewStyle()

	beforeAll = func(ctx *cli.Context) (err error) {
		if configfile != "" {
			cfg, err = config.LoadFile(configfile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fail(configStage, err)
		}

		if !ctx.IsSet("log") {
			loglvl = cfg.LogLevel
		}

		// setup log
		log.SetReportTimestamp(true)
		log.SetTimeFormat(time.TimeOnly)
		if l, e := log.ParseLevel(loglvl); e == nil {
			log.SetLevel(l)
			// Some extra info for debug level
			if log.GetLevel() == log.DebugLevel {
				log.SetReportCaller(true)
			}
		}

		if cfg.Path != "" {
			log.Debugf("using config %s", cfg.Path)
		}
		return
	}

	// action parses the diagram and creates it beneath PATH
	action = func(ctx *cli.Context) error {
		if ctx.NArg() > 1 {
			return fail(configStage, fmt.Errorf("expected at most one path, got %d", ctx.NArg()))
		}
		base := ctx.Args().First()
		if base == "" {
			base = "."
		}

		opts, err := options(ctx)
		if err != nil {
			return fail(configStage, err)
		}
		kind := cfg.Source
		if ctx.IsSet("source") {
			if kind, err = source.ParseKind(srcname); err != nil {
				return fail(configStage, err)
			}
		}
		confirm := cfg.Confirm
		if ctx.IsSet("confirm") {
			confirm = askconfirm
		}

		if err := materialize.CheckBase(base); err != nil {
			return fail(filesystemStage, err)
		}

		text, from, err := source.Read(source.Options{
			Path:            inputfile,
			Kind:            kind,
			StdinIsTerminal: prompt.IsTerminal(os.Stdin),
		})
		if err != nil {
			return fail(inputStage, err)
		}
		log.Debugf("read the tree from the %s", from)

		roots, err := parser.Parse(text)
		if err != nil {
			return fail(parseStage, err)
		}

		if printtree {
			printTree(ctx, roots)
		}

		m := materialize.New(opts)
		if dryrun {
			return showPlan(ctx, m, base, roots)
		}

		ndirs, nfiles := tree.Count(roots)
		if confirm && !prompt.YesNo(fmt.Sprintf("create %s and %s in %s?",
			english.Plural(ndirs, "directory", "directories"),
			english.Plural(nfiles, "file", ""),
			dirs.UnExpand(base))) {
			fmt.Fprintln(ctx.App.Writer, "not doing anything")
			return nil
		}

		if err := materialize.EnsureBase(base); err != nil {
			return fail(filesystemStage, err)
		}
		res, err := m.Run(base, roots)
		if err != nil {
			return fail(filesystemStage, err)
		}

		if perrs := materialize.PermissionErrors(res.Warnings); len(perrs) > 0 {
			log.Warnf("couldn't apply %s", english.Plural(len(perrs), "mode", ""))
		}
		if res.Truncated > 0 {
			log.Infof("emptied %s that already existed", english.Plural(res.Truncated, "file", ""))
		}

		msg, err := formatter.Format(summary_template, formatter.Named{
			"dirs":  english.Plural(res.Dirs, "directory", "directories"),
			"files": english.Plural(res.Files, "file", ""),
			"path":  dirs.UnExpand(base),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, msg)
		return nil
	}
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "read the tree from `FILE` (- for stdin)",
			Aliases:     []string{"f"},
			Destination: &inputfile,
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "where to read the tree from without a file: auto, clipboard or stdin",
			Aliases:     []string{"s"},
			Value:       "auto",
			Destination: &srcname,
		},
		&cli.StringFlag{
			Name:        "dir-mode",
			Usage:       "octal `MODE` for created directories",
			Aliases:     []string{"dp", "d"},
			Destination: &dmode,
		},
		&cli.StringFlag{
			Name:        "file-mode",
			Usage:       "octal `MODE` for created files",
			Aliases:     []string{"fp", "m"},
			Destination: &fmode,
		},
		&cli.StringSliceFlag{
			Name:    "exec",
			Usage:   "make files matching `GLOB` executable",
			Aliases: []string{"x"},
		},
		&cli.StringFlag{
			Name:        "exec-match",
			Usage:       "make files matching regex `PATTERN` executable",
			Destination: &execmatch,
		},
		&cli.StringSliceFlag{
			Name:  "no-exec",
			Usage: "never make files matching `GLOB` executable",
		},
		&cli.StringFlag{
			Name:        "no-exec-match",
			Usage:       "never make files matching regex `PATTERN` executable",
			Destination: &noexecmatch,
		},
		&cli.BoolFlag{
			Name:               "dry-run",
			Usage:              "show what would be created without creating anything",
			Aliases:            []string{"n"},
			DisableDefaultText: true,
			Destination:        &dryrun,
		},
		&cli.BoolFlag{
			Name:               "print",
			Usage:              "print the parsed tree",
			Aliases:            []string{"p"},
			DisableDefaultText: true,
			Destination:        &printtree,
		},
		&cli.BoolFlag{
			Name:               "confirm",
			Usage:              "ask for confirmation before creating anything",
			Aliases:            []string{"c"},
			DisableDefaultText: true,
			Destination:        &askconfirm,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "read defaults from `FILE`",
			Destination: &configfile,
		},
		&cli.StringFlag{
			Name:        "log",
			Usage:       "log level",
			Value:       "warn",
			Aliases:     []string{"l"},
			Destination: &loglvl,
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   appname,
		Usage:                  appdesc,
		Version:                appversion,
		ArgsUsage:              "[PATH]",
		Before:                 beforeAll,
		Action:                 action,
		Flags:                  flags(),
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(exitCode(err))
	}
}

// options merges the mode and exec flags over the config file.
func options(ctx *cli.Context) (opts materialize.Options, err error) {
	opts.DirMode, opts.FileMode = cfg.DirMode, cfg.FileMode
	if ctx.IsSet("dir-mode") {
		if opts.DirMode, err = filemode.ParseOptional(dmode); err != nil {
			return opts, fmt.Errorf("bad directory mode: %w", err)
		}
	}
	if ctx.IsSet("file-mode") {
		if opts.FileMode, err = filemode.ParseOptional(fmode); err != nil {
			return opts, fmt.Errorf("bad file mode: %w", err)
		}
	}

	globs, pattern := cfg.Exec, cfg.ExecMatch
	unglobs, unpattern := cfg.NoExec, cfg.NoExecMatch
	if ctx.IsSet("exec") {
		globs = ctx.StringSlice("exec")
	}
	if ctx.IsSet("exec-match") {
		pattern = execmatch
	}
	if ctx.IsSet("no-exec") {
		unglobs = ctx.StringSlice("no-exec")
	}
	if ctx.IsSet("no-exec-match") {
		unpattern = noexecmatch
	}
	if opts.Executable, err = filter.New(globs, pattern, unglobs, unpattern); err != nil {
		return opts, err
	}

	log.Debugf("dir mode: %s, file mode: %s, exec: %s", opts.DirMode, opts.FileMode, opts.Executable)
	return opts, nil
}

func showPlan(ctx *cli.Context, m *materialize.Materializer, base string, roots []*tree.Entry) error {
	steps := m.Plan(base, roots)

	if prompt.Interactive() && ctx.App.Writer == os.Stdout {
		w, h := prompt.Size()
		if err := tables.Show(steps, base, w, h); err != nil {
			return err
		}
	} else {
		tables.Print(ctx.App.Writer, steps)
	}

	if conflicts := materialize.Conflicts(steps); len(conflicts) > 0 {
		return fail(filesystemStage, fmt.Errorf("%s would conflict with what's already there, starting with %s",
			english.Plural(len(conflicts), "entry", "entries"), conflicts[0].Path))
	}
	return nil
}

func printTree(ctx *cli.Context, roots []*tree.Entry) {
	if ctx.App.Writer != os.Stdout {
		fmt.Fprint(ctx.App.Writer, tree.Render(roots))
		return
	}
	fmt.Fprint(ctx.App.Writer, tree.RenderStyled(roots, style))
}

func style(e *tree.Entry) string {
	if e.IsDir() {
		return dirstyle.Render(e.Name())
	}
	return filestyle.Render(e.Name())
}

func exitCode(err error) int {
	var serr *stageError
	if errors.As(err, &serr) {
		return int(serr.stage)
	}
	return 1
}
