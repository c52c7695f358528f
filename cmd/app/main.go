package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/unitconv/internal"
	"github.com/starford/unitconv/internal/apperr"
	pkgconfig "github.com/starford/unitconv/pkg/config"
)

func newApp(cmd *cli.Command) (*internal.App, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if p := cmd.String("history"); p != "" {
		cfg.History.Path = p
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
	}

	return internal.New(internal.WithConfig(cfg))
}

func convertAction(_ context.Context, cmd *cli.Command) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	return app.Convert(cmd.String("from"), cmd.String("to"), cmd.Float("value"))
}

func listAction(_ context.Context, cmd *cli.Command) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	return app.List()
}

func historyAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("follow") {
		return app.Follow(ctx)
	}
	return app.History()
}

func main() {
	cmd := &cli.Command{
		Name:    "unitconv",
		Version: "0.1.0",
		Usage:   "Aplikasi konversi satuan suhu, panjang, berat, volume, waktu, kecepatan, dan data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "unitconv.yaml",
				Value:       "unitconv.yaml",
				Sources:     cli.EnvVars("UNITCONV_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "history",
				Usage:   "Path to the conversion history file",
				Sources: cli.EnvVars("UNITCONV_HISTORY_FILE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Diagnostic log level (debug, info, warn, error)",
				Sources: cli.EnvVars("UNITCONV_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "Convert a value between two units of the same category",
				Action: convertAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "Source unit", Required: true},
					&cli.StringFlag{Name: "to", Usage: "Target unit", Required: true},
					&cli.FloatFlag{Name: "value", Usage: "Value to convert", Required: true},
				},
			},
			{
				Name:   "list",
				Usage:  "List supported units by category",
				Action: listAction,
			},
			{
				Name:   "history",
				Usage:  "Show the conversion history",
				Action: historyAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "follow", Aliases: []string{"f"}, Usage: "Keep printing the history as it changes"},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, apperr.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Debug("application error", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}
