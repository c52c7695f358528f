// Package internal wires the unitconv commands to the catalog, conversion
// engine and history store.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/unitconv/internal/apperr"
	"github.com/starford/unitconv/internal/convert"
	"github.com/starford/unitconv/internal/history"
	"github.com/starford/unitconv/internal/models"
	"github.com/starford/unitconv/internal/units"
)

// App runs unitconv commands against one history file.
type App struct {
	application
	store *history.Store
}

// New builds an App from the given options.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(&a.application)
	}

	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := a.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg := a.config

	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	if a.logger == nil {
		// stdout carries command output, so diagnostics go to stderr.
		a.logger = slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
		slog.SetDefault(a.logger)
	}

	a.logger.Debug("Configuration loaded",
		slog.String("history_path", cfg.History.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := history.NewStore(cfg.History.Path,
		history.WithBackupSuffix(cfg.History.BackupSuffix),
		history.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("init history: %w", err)
	}
	a.store = store
	return a, nil
}

// Convert converts value between the units named by from and to, prints the
// result with the other equivalents of the category and records the attempt.
// On failure the message is printed to stderr and the returned error wraps
// apperr.ErrReported.
func (a *App) Convert(from, to string, value float64) error {
	src, err := resolveUnit(roleSource, from)
	if err != nil {
		return a.fail(from, to, value, err)
	}
	dst, err := resolveUnit(roleTarget, to)
	if err != nil {
		return a.fail(from, to, value, err)
	}

	result, err := convert.Convert(value, src, dst)
	if err != nil {
		return a.fail(from, to, value, err)
	}

	line := fmt.Sprintf("%s %s = %s %s",
		convert.FormatNumber(value), src.Symbol(), convert.FormatNumber(result), dst.Symbol())
	if eq := convert.Equivalents(value, src, dst); len(eq) > 0 {
		parts := make([]string, len(eq))
		for i, q := range eq {
			parts[i] = q.String()
		}
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintln(a.stdout, line)

	a.logger.Debug("converted",
		slog.String("from", src.Name()),
		slog.String("to", dst.Name()),
		slog.Float64("value", value),
		slog.Float64("result", result))

	a.record(models.NewSuccess(from, to, value, result))
	return nil
}

func (a *App) fail(from, to string, value float64, err error) error {
	fmt.Fprintf(a.stderr, "Error: [KESALAHAN] %s\n", err.Error())
	a.logger.Debug("conversion failed",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("error", err.Error()))
	a.record(models.NewFailure(from, to, value, err.Error()))
	return fmt.Errorf("%w: %w", apperr.ErrReported, err)
}

// record appends rec to the history. Problems are printed, never returned:
// a history failure must not change the outcome of the conversion.
func (a *App) record(rec models.ConversionRecord) {
	warnings, err := a.store.Append(rec)
	for _, w := range warnings {
		fmt.Fprintln(a.stderr, historyMessage(w))
	}
	if err != nil {
		fmt.Fprintln(a.stderr, historyMessage(err))
		a.logger.Warn("history write failed", slog.String("error", err.Error()))
	}
}

func historyMessage(err error) string {
	var oe *history.OpError
	if !errors.As(err, &oe) {
		return fmt.Sprintf("Error: Gagal menyimpan riwayat: %v", err)
	}
	switch oe.Op {
	case history.OpDecode:
		return fmt.Sprintf("Peringatan: File riwayat korup. Membuat cadangan ke '%s' dan memulai riwayat baru.", oe.Path)
	case history.OpRead:
		return fmt.Sprintf("Error: Gagal membaca file riwayat, riwayat tidak disimpan: %v", oe.Err)
	case history.OpBackup:
		return fmt.Sprintf("Error: Gagal membuat cadangan riwayat: %v", oe.Err)
	default:
		return fmt.Sprintf("Error: Gagal menyimpan riwayat: %v", oe.Err)
	}
}

// List prints every category with its member units.
func (a *App) List() error {
	fmt.Fprintln(a.stdout, "Satuan yang didukung:")
	for i, c := range units.Categories() {
		members := c.Members()
		names := make([]string, len(members))
		for j, u := range members {
			names[j] = u.Name()
		}
		fmt.Fprintf(a.stdout, "%d. [%s] %s\n", i+1, c.Name(), strings.Join(names, ", "))
	}
	return nil
}

// History prints every stored record in order. Read failures are printed
// rather than returned.
func (a *App) History() error {
	if !a.store.Exists() {
		fmt.Fprintln(a.stdout, "Belum ada riwayat konversi.")
		return nil
	}

	records, err := a.store.LoadAll()
	if err != nil {
		a.logger.Warn("history read failed", slog.String("error", err.Error()))
		var oe *history.OpError
		cause := err
		if errors.As(err, &oe) {
			cause = oe.Err
		}
		if errors.Is(err, apperr.ErrHistoryCorrupt) {
			fmt.Fprintf(a.stdout, "Error: Gagal membaca format data riwayat (file mungkin korup): %v\n", cause)
		} else {
			fmt.Fprintf(a.stdout, "Error: Gagal membuka file riwayat: %v\n", cause)
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(a.stdout, "Riwayat konversi kosong.")
		return nil
	}

	fmt.Fprintln(a.stdout, "Riwayat Konversi:")
	for i, rec := range records {
		input := convert.FormatNumber(float64(rec.Input))
		switch {
		case rec.Error != nil:
			fmt.Fprintf(a.stdout, "%d. [GAGAL] %s %s -> %s (Error: %s)\n",
				i+1, input, rec.SourceUnit, rec.TargetUnit, *rec.Error)
		case rec.Output != nil:
			fmt.Fprintf(a.stdout, "%d. %s %s = %s %s\n",
				i+1, input, symbolOf(rec.SourceUnit), convert.FormatNumber(float64(*rec.Output)), symbolOf(rec.TargetUnit))
		}
	}
	return nil
}

// symbolOf returns the display symbol for stored unit text, or the text
// itself when it no longer resolves.
func symbolOf(text string) string {
	if u, ok := units.Resolve(text); ok {
		return u.Symbol()
	}
	return text
}

// Follow prints the history and reprints it whenever the file changes, until
// ctx is cancelled or the process receives SIGINT or SIGTERM.
func (a *App) Follow(ctx context.Context) error {
	if err := a.History(); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, stop := context.WithCancel(gCtx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return a.store.Watch(watchCtx, func() {
			fmt.Fprintln(a.stdout)
			_ = a.History()
		})
	})

	g.Go(func() error {
		defer stop()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Debug("Received shutdown signal", slog.String("signal", sig.String()))
		case <-watchCtx.Done():
		}
		return nil
	})

	return g.Wait()
}
