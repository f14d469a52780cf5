package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"tytimer/internal/storage"
)

type ConfigCmd struct {
	flags *Flags
	force bool
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Settings file commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate the settings file",
				UsageText:   "tytimer config validate",
				Description: "Checks pause percents, intervals, presets, the alarm sound file and the language.",
				Action:      cmd.runValidate,
			},
			{
				Name:        "init",
				Usage:       "Write a settings file with the default values",
				UsageText:   "tytimer config init [--force]",
				Description: "Creates the settings file at --config. An existing file is kept unless --force is set.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Usage:       "overwrite an existing settings file",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runInit,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	path := cmd.flags.ConfigPath

	settings, err := storage.LoadSettings(path)
	if err != nil {
		_, _ = fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return cli.Exit("", exitFailure)
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		_, _ = fmt.Fprintf(out, "• %s does not exist, using defaults\n", path)
	}

	if err := settings.Validate(); err != nil {
		printFieldErrors(out, err)
		return cli.Exit("", exitFailure)
	}

	_, _ = fmt.Fprintln(out, "✓ Settings are valid")
	return nil
}

func (cmd *ConfigCmd) runInit(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		return cli.Exit(fmt.Sprintf("%s already exists. Use --force to overwrite", path), exitFailure)
	}

	if err := storage.SaveSettings(path, storage.DefaultSettings()); err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}

	log.Info().Str("path", path).Msg("wrote default settings")
	_, _ = fmt.Fprintf(c.Root().Writer, "✓ Wrote %s\n", path)
	return nil
}

func printFieldErrors(out io.Writer, err error) {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		_, _ = fmt.Fprintf(out, "✗ %v\n", err)
		return
	}

	for _, fieldErr := range fieldErrs {
		_, _ = fmt.Fprintf(out, "✗ %s: %v\n", fieldErr.Field, fieldErr.Err)
	}
	_, _ = fmt.Fprintf(out, "\n%d error(s) found\n", len(fieldErrs))
}
