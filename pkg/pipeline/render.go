package pipeline

import (
	"context"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/io"
	"github.com/matzehuels/tikzlayout/pkg/scene"
	"github.com/matzehuels/tikzlayout/pkg/tikz"
)

// Decode parses scene bytes in opts.SceneFormat, sniffing when unset.
func Decode(data []byte, opts Options) (*scene.Scene, error) {
	format := opts.SceneFormat
	if format == "" {
		format = scene.Sniff(data)
	}
	return scene.Decode(data, format)
}

// Render generates the requested formats for d.
func Render(ctx context.Context, d *scene.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var tex []byte
	texDoc := func() ([]byte, error) {
		if tex != nil {
			return tex, nil
		}
		var err error
		tex, err = d.Document().Bytes()
		return tex, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatTeX:
			data, err = texDoc()
		case FormatPDF:
			if data, err = texDoc(); err == nil {
				data, err = tikz.CompilePDF(ctx, data, opts.CompileOptions())
			}
		case FormatJSON:
			var rep *io.Report
			if rep, err = io.NewReport(d.Root, d.LeafIDs()); err == nil {
				data, err = io.MarshalReport(rep)
			}
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errs.Wrap(codeOr(err, errs.ErrCodeRenderFailed), err, "render %s", format).WithOp("render")
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func codeOr(err error, def errs.Code) errs.Code {
	if c := errs.GetCode(err); c != "" {
		return c
	}
	return def
}
