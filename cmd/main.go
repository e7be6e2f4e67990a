package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"ortimer/internal/storage"
)

const appName = "OrTimer"

func main() {
	app := &cli.App{
		Name:    "ortimer",
		Usage:   "countdown timer with a completion chime",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (error, warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"ORTIMER_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to settings.yaml (defaults to the user config directory)",
				EnvVars: []string{"ORTIMER_CONFIG"},
			},
		},
		Before: func(cctx *cli.Context) error {
			configLogger(cctx, os.Stderr)
			return nil
		},
		Action: runDesktop,
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "count down in the terminal and chime at 00:00",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "minutes",
						Aliases: []string{"m"},
						Usage:   "minutes to count down",
					},
					&cli.IntFlag{
						Name:    "seconds",
						Aliases: []string{"s"},
						Usage:   "seconds to count down",
					},
					&cli.BoolFlag{
						Name:  "no-chime",
						Usage: "finish silently",
					},
				},
				Action: runTerminal,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("exiting process", "error", err)
		os.Exit(1)
	}
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func settingsPath(cctx *cli.Context) (string, error) {
	if path := cctx.String("config"); path != "" {
		return path, nil
	}
	return storage.SettingsPath(appName)
}
