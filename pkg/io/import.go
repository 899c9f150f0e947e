package io

import (
	"io"
	"os"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/scene"
)

// ReadScene decodes a scene from r. An empty format is sniffed from the
// content. ReadScene does not close r.
func ReadScene(r io.Reader, format scene.Format) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read scene")
	}
	if format == "" {
		format = scene.Sniff(data)
	}
	return scene.Decode(data, format)
}

// ImportScene reads the scene file at path, choosing the format from the
// extension. A missing file fails with FILE_NOT_FOUND.
func ImportScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "scene file %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadScene(f, scene.FormatFromPath(path))
}
