package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/lightdom/config"
	"github.com/chrisuehlinger/lightdom/dom"
	"github.com/chrisuehlinger/lightdom/state"
)

const version = "0.3.0"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	env.RestoreStdLog()
	return nil
}

// Subcommands return regular errors; this is called before appContext is
// destroyed so the error can be logged properly.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

// newApp builds the command tree. Command results go to the root command's
// Writer (stdout by default).
func newApp() *cli.Command {
	sourceHelp := `
SOURCE:
    path to a file, http(s) URL, or "-" for STDIN
`
	orders := []string{dom.DepthFirst.String(), dom.BreadthFirst.String()}

	return &cli.Command{
		Name:            config.AppName,
		Usage:           "builds, inspects and renders light HTML-like document trees",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages to console"},
		},
		Commands: []*cli.Command{
			{
				Name:         "render",
				Usage:        "Parses markup and renders it as indented or compact HTML",
				OnUsageError: usageErrorHandler,
				Action:       runRender,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "compact", Usage: "output outer HTML on a single line"},
					&cli.IntFlag{Name: "indent", Value: -1, Usage: "indentation of the root element (overrides configuration)"},
					&cli.StringFlag{Name: "state", Value: dom.Visible.String(), Usage: "visibility `STATE` of top-level elements (VISIBLE, HIDDEN, COLLAPSED)"},
					&cli.BoolFlag{Name: "document", Usage: "parse SOURCE as a complete document instead of a fragment"},
					&cli.BoolFlag{Name: "scripts", Usage: "bind inline on<event> attributes to script handlers"},
					&cli.StringSliceFlag{Name: "trigger", Usage: "trigger `EVENT[=DATA]` on every element with listeners before rendering"},
					&cli.BoolFlag{Name: "images", Usage: "load img sources and report their types"},
				},
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:               "inspect",
				Usage:              "Runs validation, style, metrics and accessibility visitors over markup",
				OnUsageError:       usageErrorHandler,
				Action:             runInspect,
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:         "walk",
				Usage:        "Lists nodes in traversal order",
				OnUsageError: usageErrorHandler,
				Action:       runWalk,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "order", Value: orders[0], Usage: "traversal `ORDER` (" + strings.Join(orders, ", ") + ")"},
				},
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:         "book",
				Usage:        "Converts a plain text book into an HTML page",
				OnUsageError: usageErrorHandler,
				Action:       runBook,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "page `TITLE`, defaults to the first line of the book"},
					&cli.IntFlag{Name: "short-line", Usage: "lines shorter than `N` runes become headings (overrides configuration)"},
					&cli.BoolFlag{Name: "stats", Usage: "report element type sharing statistics"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
DESTINATION:
    output file, if absent - STDOUT
`,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	app := newApp()

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		err  error
		data []byte
		kind string
	)
	if cmd.Bool("default") {
		kind = "default"
		data = config.Prepare()
	} else {
		kind = "actual"
		if data, err = config.Dump(env.Cfg); err != nil {
			return fmt.Errorf("unable to get configuration: %w", err)
		}
	}

	fname := cmd.Args().Get(0)
	env.Log.Debug("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
	return writeOutput(commandOutput(cmd), fname, data)
}
