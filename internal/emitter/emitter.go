package emitter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mcncl/beangen/internal/errors"
	"github.com/mcncl/beangen/internal/generator"
)

// Emitter writes generated beans below a single output directory.
// Existing files are overwritten.
type Emitter struct {
	dir    string
	logger *slog.Logger
}

// New creates an Emitter for dir. A nil logger discards the progress messages.
func New(dir string, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Emitter{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (e *Emitter) Dir() string {
	return e.dir
}

// EnsureDir creates the output directory if it does not exist yet.
func (e *Emitter) EnsureDir() error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create output directory '%s'", e.dir), err)
	}
	return nil
}

// Emit writes content to <dir>/<fileName> and returns the path written.
func (e *Emitter) Emit(fileName, content string) (string, error) {
	if err := e.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.NewOutputError(fmt.Sprintf("failed to write file '%s'", path), err)
	}
	return path, nil
}

// EmitAll writes files in order and stops at the first failure. The paths
// written before the failure are returned with the error.
func (e *Emitter) EmitAll(files []generator.GeneratedFile) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := e.Emit(f.FileName, f.Content)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		e.logger.With("bean", f.ClassName, "file", path).Info("generated bean")
	}
	return paths, nil
}
