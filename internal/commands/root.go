// Package commands builds the tytimer command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"tytimer/internal/core/countdown"
	"tytimer/internal/i18n"
	"tytimer/internal/logging"
	"tytimer/internal/storage"
)

const (
	exitOK              = 0
	exitFailure         = 1
	exitInvalidDuration = 2
)

// Runner starts the graphical parts of tytimer. Both methods block until the
// GUI event loop ends.
type Runner interface {
	RunTimer(ctx context.Context, seconds int64, settings storage.Settings) error
	RunSetter(ctx context.Context, settings storage.Settings, start func(minutes float64) error) error
}

// Spawner starts a process that outlives the caller.
type Spawner interface {
	SpawnDetached(execPath string, args ...string) error
}

// Deps are the collaborators the root command drives.
type Deps struct {
	Runner     Runner
	Spawner    Spawner
	Executable func() (string, error)
}

type RootCmd struct {
	flags *Flags
	deps  Deps
}

// NewApp creates the root command with every subcommand registered. Errors are
// returned from Run and never exit the process; use ExitCode to map them.
func NewApp(version string, deps Deps) *cli.Command {
	if deps.Executable == nil {
		deps.Executable = os.Executable
	}

	flags := &Flags{}
	root := &RootCmd{flags: flags, deps: deps}
	var logCloser func()

	app := &cli.Command{
		Name:      appName,
		Usage:     "background countdown timer with a tray icon",
		UsageText: "tytimer [options] [minutes]",
		Description: "Counts down the given number of minutes (fractions allowed) in the background, " +
			"then rings an alarm and shows a window. Without minutes a small window asks for them.",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TYTIMER_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stdout)",
				Sources:     cli.EnvVars("TYTIMER_LOG_FILE"),
				Value:       DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to settings file",
				Sources:     cli.EnvVars("TYTIMER_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.BoolFlag{
				Name:        "no-daemon",
				Usage:       "run the timer in the foreground instead of detaching",
				Destination: &flags.NoDaemon,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("failed to set up logging: %v", err), exitFailure)
			}
			log.Logger = logger
			logCloser = closer
			i18n.Detect("", logger)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: root.run,
		OnUsageError: func(ctx context.Context, c *cli.Command, err error, isSubcommand bool) error {
			return cli.Exit(fmt.Sprintf("Incorrect usage: %v", err), exitInvalidDuration)
		},
		// Run returns every error to the caller instead of exiting.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	app = NewConfigCmd(flags).Register(app)
	return app
}

// ExitCode maps an error returned by the root command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFailure
}

func (cmd *RootCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return cli.Exit(fmt.Sprintf("unexpected arguments %q. Run 'tytimer --help' for usage", c.Args().Tail()), exitInvalidDuration)
	}

	var (
		minutes float64
		seconds int64
	)
	if c.Args().Present() {
		parsed, err := parseMinutes(c.Args().First())
		if err != nil {
			return cli.Exit(i18n.T("Minutes must be positive."), exitInvalidDuration)
		}
		minutes = parsed
		seconds, _ = countdown.SecondsFromMinutes(minutes)
	}

	settings, err := cmd.loadSettings()
	if err != nil {
		return err
	}
	cmd.flags.Settings = settings
	i18n.Detect(settings.Language, log.Logger)

	if !c.Args().Present() {
		return cmd.runSetter(ctx)
	}

	if cmd.flags.NoDaemon {
		log.Info().Float64("minutes", minutes).Int64("seconds", seconds).Msg("running timer in the foreground")
		if err := cmd.deps.Runner.RunTimer(ctx, seconds, settings); err != nil {
			return fmt.Errorf("run timer: %w", err)
		}
		return nil
	}

	if err := cmd.spawn(minutes); err != nil {
		log.Error().Err(err).Msg("failed to enter background mode")
		return cli.Exit(fmt.Sprintf("failed to start timer in background: %v", err), exitFailure)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, "Timer started in background.")
	return nil
}

func parseMinutes(arg string) (float64, error) {
	minutes, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("parse minutes %q: %w", arg, countdown.ErrInvalidDuration)
	}
	if _, err := countdown.SecondsFromMinutes(minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

func (cmd *RootCmd) runSetter(ctx context.Context) error {
	log.Debug().Msg("no duration given, showing setter window")
	err := cmd.deps.Runner.RunSetter(ctx, cmd.flags.Settings, func(minutes float64) error {
		if err := cmd.spawn(minutes); err != nil {
			log.Error().Err(err).Float64("minutes", minutes).Msg("failed to start timer from setter")
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("run setter: %w", err)
	}
	return nil
}

// spawn re-executes tytimer detached with --no-daemon, forwarding the flags
// that shape the child's logging and settings.
func (cmd *RootCmd) spawn(minutes float64) error {
	execPath, err := cmd.deps.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := []string{
		"--no-daemon",
		"--log-level", cmd.flags.LogLevel,
		"--log-file", cmd.flags.LogFile,
		"--config", cmd.flags.ConfigPath,
		strconv.FormatFloat(minutes, 'f', -1, 64),
	}
	if err := cmd.deps.Spawner.SpawnDetached(execPath, args...); err != nil {
		return err
	}

	log.Info().Str("exec", execPath).Float64("minutes", minutes).Msg("timer started in background")
	return nil
}

func (cmd *RootCmd) loadSettings() (storage.Settings, error) {
	settings, err := storage.LoadSettings(cmd.flags.ConfigPath)
	if err != nil {
		return settings, cli.Exit(fmt.Sprintf("load settings: %v", err), exitFailure)
	}
	if err := settings.Validate(); err != nil {
		log.Error().Err(err).Str("path", cmd.flags.ConfigPath).Msg("settings validation failed")
		return settings, cli.Exit(fmt.Sprintf("invalid settings in %s: %v. Run 'tytimer config validate' for details", cmd.flags.ConfigPath, err), exitFailure)
	}
	return settings, nil
}
