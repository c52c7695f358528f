// Package history persists conversion attempts to a single JSON file.
//
// The whole record array is rewritten on every append. A file that fails to
// parse is moved aside to a backup path and the store starts over with an
// empty history.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/unitconv/internal/apperr"
	"github.com/starford/unitconv/internal/models"
)

// DefaultBackupSuffix is appended to the history path to name the backup of
// a corrupt file.
const DefaultBackupSuffix = ".bak"

// Operations reported in OpError.
const (
	OpRead   = "read"
	OpDecode = "decode"
	OpBackup = "backup"
	OpWrite  = "write"
)

// OpError describes a failed history operation. Kind is apperr.ErrHistoryIO
// or apperr.ErrHistoryCorrupt.
type OpError struct {
	Op   string
	Kind error
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("history: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, e.Err}
}

// Store is a JSON-file backed conversion history. It does no locking: two
// processes appending at once race and the last writer wins.
type Store struct {
	path         string // as configured, used in messages
	abs          string
	backupSuffix string
	logger       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBackupSuffix overrides DefaultBackupSuffix.
func WithBackupSuffix(suffix string) Option {
	return func(s *Store) {
		if suffix != "" {
			s.backupSuffix = suffix
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a Store backed by the file at path. The file need not exist.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("history: resolve path: %w", err)
	}
	s := &Store{
		path:         filepath.Clean(path),
		abs:          abs,
		backupSuffix: DefaultBackupSuffix,
		logger:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the path of the history file as configured.
func (s *Store) Path() string { return s.path }

// BackupPath returns where a corrupt history file is moved to.
func (s *Store) BackupPath() string { return s.path + s.backupSuffix }

// Exists reports whether the history file may be present. Only a definite
// not-found answer counts as absent, so other stat failures surface later as
// read errors.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, fs.ErrNotExist)
}

// LoadAll returns every stored record, oldest first. A missing file yields an
// empty history. Unlike Append, a corrupt file is reported, not backed up.
func (s *Store) LoadAll() ([]models.ConversionRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &OpError{Op: OpRead, Kind: apperr.ErrHistoryIO, Path: s.path, Err: err}
	}
	records, err := decode(data)
	if err != nil {
		return nil, &OpError{Op: OpDecode, Kind: apperr.ErrHistoryCorrupt, Path: s.path, Err: err}
	}
	return records, nil
}

// Append adds rec to the end of the history and rewrites the file.
//
// A corrupt file is renamed to BackupPath first and reported as a warning.
// An existing file that cannot be read is left alone and nothing is written.
// The returned error is non-nil only when nothing was written.
func (s *Store) Append(rec models.ConversionRecord) (warnings []error, err error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("history: invalid record: %w", err)
	}

	var records []models.ConversionRecord
	data, readErr := os.ReadFile(s.path)
	switch {
	case errors.Is(readErr, fs.ErrNotExist):
	case readErr != nil:
		return nil, &OpError{Op: OpRead, Kind: apperr.ErrHistoryIO, Path: s.path, Err: readErr}
	default:
		existing, decErr := decode(data)
		if decErr == nil {
			records = existing
			break
		}
		backup := s.BackupPath()
		warnings = append(warnings, &OpError{Op: OpDecode, Kind: apperr.ErrHistoryCorrupt, Path: backup, Err: decErr})
		s.logger.Warn("history: corrupt file, backing up",
			slog.String("path", s.path),
			slog.String("backup", backup),
			slog.String("error", decErr.Error()))
		if err := os.Rename(s.path, backup); err != nil {
			return warnings, &OpError{Op: OpBackup, Kind: apperr.ErrHistoryIO, Path: backup, Err: err}
		}
	}

	records = append(records, rec)
	if err := s.write(records); err != nil {
		return warnings, err
	}
	s.logger.Debug("history: appended",
		slog.String("path", s.path),
		slog.Int("records", len(records)))
	return warnings, nil
}

// write atomically replaces the history file: tmp file, fsync, rename.
func (s *Store) write(records []models.ConversionRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: s.path, Err: err}
	}
	content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".unitconv-tmp-*")
	if err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &OpError{Op: OpWrite, Kind: apperr.ErrHistoryIO, Path: s.path, Err: err}
	}
	success = true
	return nil
}

func decode(data []byte) ([]models.ConversionRecord, error) {
	var records []models.ConversionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
