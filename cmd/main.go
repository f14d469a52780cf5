package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"tytimer/internal/commands"
	"tytimer/internal/platform"
	"tytimer/internal/timerapp"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	app := commands.NewApp(build(), commands.Deps{
		Runner:     timerapp.New(),
		Spawner:    platform.NewService(),
		Executable: os.Executable,
	})

	err := app.Run(context.Background(), os.Args)
	if err != nil && err.Error() != "" {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(commands.ExitCode(err))
}
