// Package seed installs module-shipped default payloads into the signed
// store in bulk.
//
// Each regular file in the source directory becomes one signed record
// named after the file without its extension, written through the raw
// path so payload bytes land exactly as shipped. The active store is not
// touched; it fills in as objects are saved through the normal write
// path. A lock file in the store root keeps concurrent installers from
// interleaving.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"coffer/internal/confname"
	"coffer/internal/faults"
	"coffer/internal/logging"
	"coffer/internal/storage"
)

const lockFileName = ".import.lock"

// Report summarizes one bulk import run.
type Report struct {
	RunID     string
	Installed []string
}

// Install enumerates the regular files in dir (sorted by name; dotfiles
// and subdirectories are skipped) and installs each one. The first
// failure aborts the run; files already installed stay installed. A held
// lock fails immediately rather than waiting.
func Install(ctx context.Context, store *storage.Manager, dir string, logger *slog.Logger) (*Report, error) {
	log := logging.NewComponentLogger(logger, "seed")
	report := &Report{RunID: uuid.NewString()}

	lock := flock.New(filepath.Join(store.FilesDir(), lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another import is already running")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read payload directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := confname.Validate(name); err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "seed", "install",
				fmt.Sprintf("payload file %q", entry.Name()), err)
		}

		payload, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read payload %q: %w", entry.Name(), err)
		}
		if err := store.WriteRaw(name, payload); err != nil {
			return nil, fmt.Errorf("install %q: %w", name, err)
		}

		report.Installed = append(report.Installed, name)
		log.Debug("payload installed",
			logging.String("name", name),
			logging.String("run_id", report.RunID))
	}

	log.Info("default payloads installed",
		logging.Int("count", len(report.Installed)),
		logging.String("dir", dir),
		logging.String("run_id", report.RunID))
	return report, nil
}
