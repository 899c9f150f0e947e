package io

import (
	"io"
	"os"
	"path/filepath"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// ExportFile writes data to path atomically: the bytes go to a temporary
// file in the same directory which is then renamed over path.
func ExportFile(path string, data []byte) error {
	return ExportWith(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ExportWith is like [ExportFile] but lets write stream the content. If
// write fails, path is left untouched.
func ExportWith(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if err := write(tmp); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return errs.Wrap(errs.ErrCodeInternal, err, "chmod %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return errs.Wrap(errs.ErrCodeInternal, err, "rename into %s", path)
	}
	return nil
}
