// Package testutil provides shared test helpers for history-backed tests.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/unitconv/internal/history"
)

// TestHistory returns a history path inside a fresh temp dir and a Store
// reading the same file.
func TestHistory(t *testing.T) (string, *history.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversion.json")
	store, err := history.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return path, store
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
