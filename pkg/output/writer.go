// Package output resolves the destination directory and writes rendered
// filter lists into it.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FilesystemError reports a failed directory or file operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// EnsureDir resolves path to an absolute directory, creating it (including
// missing parents) when absent. Idempotent: an existing directory is
// returned as-is.
func EnsureDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &FilesystemError{Op: "resolve", Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", &FilesystemError{Op: "resolve", Path: abs, Err: errors.New("not a directory")}
		}
		return abs, nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", &FilesystemError{Op: "create", Path: abs, Err: err}
		}
		return abs, nil
	default:
		return "", &FilesystemError{Op: "stat", Path: abs, Err: err}
	}
}

// Writer writes list files into a filesystem rooted at the destination
// directory.
type Writer struct {
	fsys billy.Filesystem
}

// NewWriter returns a Writer over the given filesystem. Tests pass an
// in-memory filesystem here.
func NewWriter(fsys billy.Filesystem) *Writer {
	return &Writer{fsys: fsys}
}

// NewDirWriter returns a Writer rooted at dir on the OS filesystem.
func NewDirWriter(dir string) *Writer {
	return NewWriter(osfs.New(dir))
}

// WriteList replaces <name>.txt with the given lines, each terminated by a
// newline. Any existing file of the same name is removed first; content is
// never merged with a previous run.
func (w *Writer) WriteList(name string, lines []string) (string, error) {
	fileName := name + ".txt"
	if _, err := w.fsys.Stat(fileName); err == nil {
		if err := w.fsys.Remove(fileName); err != nil {
			return "", &FilesystemError{Op: "remove", Path: fileName, Err: err}
		}
	}
	f, err := w.fsys.Create(fileName)
	if err != nil {
		return "", &FilesystemError{Op: "create", Path: fileName, Err: err}
	}
	for _, line := range lines {
		if _, err := f.Write([]byte(line + "\n")); err != nil {
			_ = f.Close()
			return "", &FilesystemError{Op: "write", Path: fileName, Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return "", &FilesystemError{Op: "close", Path: fileName, Err: err}
	}
	return w.fsys.Join(w.fsys.Root(), fileName), nil
}
